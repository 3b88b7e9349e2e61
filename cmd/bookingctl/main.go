// Command bookingctl administers the AWS resources the booking service uses:
// the support ticket queue and the DynamoDB room catalog.
//
//	bookingctl [flags] create-queue [name]
//	bookingctl [flags] delete-queue [name]
//	bookingctl [flags] send <message> [queue]
//	bookingctl [flags] receive [queue]
//	bookingctl [flags] create-rooms-table
//	bookingctl [flags] get-room <room-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/awsx"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/queue"
	"github.com/nekogravitycat/room-booking-backend/internal/roomcatalog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	region := flag.String("region", envOr("AWS_REGION", "us-east-1"), "AWS region")
	queueName := flag.String("queue", envOr("SUPPORT_QUEUE_NAME", "yugo-support-tickets"), "default queue name")
	table := flag.String("table", envOr("DYNAMODB_ROOMS_TABLE", "YugoRooms"), "room catalog table")
	timeout := flag.Duration("timeout", 5*time.Minute, "command timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	awsCfg, err := awsx.LoadConfig(ctx, *region, false)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cli := &cli{
		queues:       queue.NewSQSQueue(sqs.NewFromConfig(awsCfg)),
		catalog:      roomcatalog.NewDynamoCatalog(dynamodb.NewFromConfig(awsCfg), *table),
		defaultQueue: *queueName,
		out:          os.Stdout,
	}

	if err := cli.run(ctx, flag.Args()); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: bookingctl [flags] <command> [args]

commands:
  create-queue [name]        create the support queue
  delete-queue [name]        delete the support queue
  send <message> [queue]     send one message
  receive [queue]            receive and delete one message
  create-rooms-table         create the room catalog table and wait for it
  get-room <room-id>         print a room's catalog item

flags:
`)
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
