package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/queue"
	"github.com/nekogravitycat/room-booking-backend/internal/roomcatalog"
)

var errUsage = errors.New("invalid arguments, run with -h for usage")

type queueAdmin interface {
	queue.Queue
	CreateQueue(ctx context.Context, name string) (string, error)
	DeleteQueue(ctx context.Context, name string) error
}

type catalogAdmin interface {
	CreateTable(ctx context.Context) error
	GetRoom(ctx context.Context, id string) (*roomcatalog.Item, bool, error)
}

type cli struct {
	queues       queueAdmin
	catalog      catalogAdmin
	defaultQueue string
	out          io.Writer
}

func (c *cli) run(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "create-queue":
		url, err := c.queues.CreateQueue(ctx, c.queueArg(rest, 0))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "created queue %s\n", url)

	case "delete-queue":
		name := c.queueArg(rest, 0)
		if err := c.queues.DeleteQueue(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted queue %s\n", name)

	case "send":
		if len(rest) < 1 {
			return errUsage
		}
		name := c.queueArg(rest, 1)
		if err := c.queues.Enqueue(ctx, name, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "sent message to %s\n", name)

	case "receive":
		msg, ok, err := c.queues.DequeueOne(ctx, c.queueArg(rest, 0))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out, "no message available")
			return nil
		}
		fmt.Fprintf(c.out, "%s\t%s\n", msg.ID, msg.Body)

	case "create-rooms-table":
		if err := c.catalog.CreateTable(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "room catalog table is active")

	case "get-room":
		if len(rest) != 1 {
			return errUsage
		}
		item, ok, err := c.catalog.GetRoom(ctx, rest[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("room %s is not in the catalog", rest[0])
		}
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(item)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}

// queueArg returns the queue name at position i, or the configured default.
func (c *cli) queueArg(args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return c.defaultQueue
}
