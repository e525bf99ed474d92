package chpool

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nativeproto/ch"
	"github.com/nativeproto/ch/proto"
)

// PoolConn returns a Pool dialing the server named by the CH_DSN
// environment variable, skipping the test if it is unset. This keeps
// chpool's integration tests runnable without a local ClickHouse, while
// still exercising the real wire protocol when one is configured.
func PoolConn(t *testing.T) *Pool {
	t.Helper()
	dsn := os.Getenv("CH_DSN")
	if dsn == "" {
		t.Skip("CH_DSN not set, skipping integration test")
	}
	p, err := Connect(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

// testDo runs a minimal round-trip query against conn and requires it to
// complete without error; used by TestClient_Do.
func testDo(t *testing.T, conn *Conn) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, conn.Do(ctx, ch.Query{
		Body:   "SELECT 1 AS one",
		Result: proto.AutoResult{},
	}))
}
