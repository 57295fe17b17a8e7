package id

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a time-ordered int64 id.
func New() int64 {
	return node.Generate().Int64()
}

// Parse reads a decimal id as produced by New, e.g. from a path parameter.
func Parse(s string) (int64, error) {
	sid, err := snowflake.ParseString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if sid.Int64() <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return sid.Int64(), nil
}

// Token returns n random bytes encoded as unpadded base64url. Used for
// onboarding link tokens, which must not be guessable from ids.
func Token(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
