package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownStack_Run(t *testing.T) {
	t.Run("releases in reverse order", func(t *testing.T) {
		var order []string
		stack := &shutdownStack{}
		for _, name := range []string{"store", "metrics", "nats", "bot"} {
			stack.push(name, func(context.Context) error {
				order = append(order, name)
				return nil
			})
		}

		stack.run(context.Background())

		assert.Equal(t, []string{"bot", "nats", "metrics", "store"}, order)
	})

	t.Run("keeps going after a failing step", func(t *testing.T) {
		var released []string
		stack := &shutdownStack{}
		stack.push("store", func(context.Context) error {
			released = append(released, "store")
			return nil
		})
		stack.push("nats", func(context.Context) error {
			return errors.New("drain timed out")
		})
		stack.push("metrics", func(context.Context) error {
			released = append(released, "metrics")
			return nil
		})

		stack.run(context.Background())

		assert.Equal(t, []string{"metrics", "store"}, released)
	})

	t.Run("partial startup releases only what was acquired", func(t *testing.T) {
		var released []string
		stack := &shutdownStack{}
		stack.push("metrics", func(context.Context) error {
			released = append(released, "metrics")
			return nil
		})
		stack.push("nats", func(context.Context) error {
			released = append(released, "nats")
			return nil
		})
		// Bot startup failed here, so nothing else was pushed

		stack.run(context.Background())
		stack.run(context.Background())

		assert.Equal(t, []string{"nats", "metrics"}, released)
	})
}
