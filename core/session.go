package core

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Session is the capability trait §9's design note asks for in place of
// dynamic dispatch on a LoginService/Session class hierarchy: a sum type
// (OfflineSession here; the Microsoft/online variant is an out-of-scope
// external collaborator per §1) behind one small interface.
type Session interface {
	UUID() string
	AccessToken() string
	SessionToken() string
	UserType() string
}

// OfflineSession derives a deterministic identity from a username alone,
// with no network I/O (§4.8).
type OfflineSession struct {
	username string
}

// NewOfflineSession builds the offline session for username.
func NewOfflineSession(username string) OfflineSession {
	return OfflineSession{username: username}
}

func (s OfflineSession) UUID() string {
	return offlineUUID(s.username)
}

func (s OfflineSession) AccessToken() string {
	return offlineAccessToken(s.username)
}

func (s OfflineSession) SessionToken() string {
	return "token:" + s.AccessToken() + ":" + s.UUID()
}

func (s OfflineSession) UserType() string {
	return "offline"
}

// offlineUUID reinterprets MD5(utf8(username)) as a 128-bit UUID value
// (high 8 bytes MSB, low 8 bytes LSB, big-endian), formatted as a standard
// 8-4-4-4-12 hex UUID string.
func offlineUUID(username string) string {
	sum := md5.Sum([]byte(username))
	return formatUUIDBytes(sum)
}

// offlineAccessToken reinterprets MD5(utf8(username + "_access")) as a UUID
// the same way offlineUUID does -- not a secure token, purely a local
// deterministic identifier (§9).
func offlineAccessToken(username string) string {
	sum := md5.Sum([]byte(username + "_access"))
	return formatUUIDBytes(sum)
}

func formatUUIDBytes(b [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// fallbackOfflineUUID implements the "cryptographic hash unavailable" path
// from §4.8/§9: uuid = (0, hashCode(username)) -- still deterministic, not
// collision-resistant, never used unless crypto/md5 itself is disabled.
// Kept as a pure function so it stays testable without actually removing
// crypto/md5 from the build.
func fallbackOfflineUUID(username string) string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[8:], uint64(uint32(javaStringHashCode(username))))
	return formatUUIDBytes(b)
}

// javaStringHashCode mirrors java.lang.String.hashCode(): h = 31*h + c over
// each UTF-16 code unit, since the original launcher's fallback derives
// its hash the same way the JVM does.
func javaStringHashCode(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(c)
	}
	return h
}
