package ethereum

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	qt "github.com/frankban/quicktest"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startAnvil spins up a disposable Foundry anvil node, the way
// tests/helpers/service.go spins up Anvil via docker for the integration
// suite, minus the full davinci-node compose stack: this package only
// needs a live JSON-RPC endpoint to exercise Dial/CurrentBlock/retry, not
// a deployed contract (the contract itself is out of scope, spec.md
// Non-goals).
func startAnvil(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "ghcr.io/foundry-rs/foundry:latest",
		Cmd:          []string{"anvil", "--host", "0.0.0.0"},
		ExposedPorts: []string{"8545/tcp"},
		WaitingFor:   wait.ForListeningPort("8545/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable, skipping anvil integration test: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "8545/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return "http://" + host + ":" + port.Port()
}

func TestDialAndCurrentBlock(t *testing.T) {
	c := qt.New(t)
	rpcURL := startAnvil(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key, err := ethcrypto.GenerateKey()
	c.Assert(err, qt.IsNil)

	adapter, err := Dial(ctx, rpcURL, common.Address{}, 31337, key)
	c.Assert(err, qt.IsNil)

	_, err = adapter.CurrentBlock(ctx)
	c.Assert(err, qt.IsNil)
}
