package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfflineSessionDeterministic(t *testing.T) {
	a := NewOfflineSession("Player")
	b := NewOfflineSession("Player")
	assert.Equal(t, a.UUID(), b.UUID())
	assert.Equal(t, a.AccessToken(), b.AccessToken())
	assert.Equal(t, "offline", a.UserType())
}

func TestOfflineSessionDiffersByUsername(t *testing.T) {
	a := NewOfflineSession("Player1")
	b := NewOfflineSession("Player2")
	assert.NotEqual(t, a.UUID(), b.UUID())
}

func TestOfflineSessionUUIDFormat(t *testing.T) {
	s := NewOfflineSession("Player")
	uuid := s.UUID()
	assert.Len(t, uuid, 36)
	assert.Equal(t, byte('-'), uuid[8])
	assert.Equal(t, byte('-'), uuid[13])
	assert.Equal(t, byte('-'), uuid[18])
	assert.Equal(t, byte('-'), uuid[23])
}

func TestOfflineSessionAccessTokenFormat(t *testing.T) {
	s := NewOfflineSession("Player")
	token := s.AccessToken()
	assert.Len(t, token, 36)
	assert.Equal(t, byte('-'), token[8])
	assert.Equal(t, byte('-'), token[13])
	assert.Equal(t, byte('-'), token[18])
	assert.Equal(t, byte('-'), token[23])
	assert.NotEqual(t, s.UUID(), token)
}

func TestOfflineSessionTokenIncludesUUID(t *testing.T) {
	s := NewOfflineSession("Player")
	assert.Contains(t, s.SessionToken(), s.UUID())
	assert.Contains(t, s.SessionToken(), s.AccessToken())
}

func TestJavaStringHashCode(t *testing.T) {
	assert.Equal(t, int32(0), javaStringHashCode(""))
	assert.Equal(t, int32(97), javaStringHashCode("a"))
	assert.Equal(t, int32(-1901885695), javaStringHashCode("Player"))
}

func TestFallbackOfflineUUIDDeterministic(t *testing.T) {
	a := fallbackOfflineUUID("Player")
	b := fallbackOfflineUUID("Player")
	assert.Equal(t, a, b)
	assert.Len(t, a, 36)
}
