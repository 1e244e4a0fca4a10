package cache

import "strings"

const (
	GlobalKeyPrefix = "quizarena"
)

// GenerateKey builds a namespaced Redis key for a service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended.
func GenerateKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SubmissionLockKey is the per-(user,test) key guarding concurrent submits.
func SubmissionLockKey(userID, testID string) string {
	return GenerateKey("attempt", "lock", userID, testID)
}
