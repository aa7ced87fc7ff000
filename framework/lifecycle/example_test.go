package lifecycle_test

import (
	"fmt"

	"github.com/km-arc/go-sugar/framework/lifecycle"
)

type exampleConfig struct {
	apiKey string
}

func (c *exampleConfig) Setup() error {
	c.apiKey = "secret"
	return nil
}

func (c *exampleConfig) Teardown() error { return nil }

type exampleClient struct {
	key string
}

func (c *exampleClient) Setup() error    { return nil }
func (c *exampleClient) Teardown() error { return nil }

func ExampleManager() {
	m := lifecycle.New()

	_ = m.Register(lifecycle.Registration{
		ID: "ExampleConfig",
		Construct: func(lifecycle.Deps) (lifecycle.Object, error) {
			return &exampleConfig{}, nil
		},
	})
	_ = m.Register(lifecycle.Registration{
		ID:           "ExampleClient",
		Dependencies: []lifecycle.ID{"ExampleConfig"},
		Construct: func(deps lifecycle.Deps) (lifecycle.Object, error) {
			cfg := deps["example_config"].(*exampleConfig)
			return &exampleClient{key: cfg.apiKey}, nil
		},
	})

	_ = m.Startup()
	client, _ := lifecycle.Resolve[*exampleClient](m, "ExampleClient")
	fmt.Println(client.key)
	_ = m.Shutdown()
	// Output: secret
}
