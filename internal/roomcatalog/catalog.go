// Package roomcatalog mirrors rooms into a DynamoDB table keyed by room_id.
package roomcatalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

const tableWaitTimeout = 2 * time.Minute

// DynamoAPI is the subset of the DynamoDB client used by the catalog.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Item is the stored shape of a room.
type Item struct {
	RoomID        string                `dynamodbav:"room_id"`
	Name          string                `dynamodbav:"name"`
	Location      string                `dynamodbav:"location"`
	RoomType      string                `dynamodbav:"room_type"`
	PricePerNight attributevalue.Number `dynamodbav:"price_per_night"`
	Description   string                `dynamodbav:"description"`
	ImageURL      string                `dynamodbav:"image_url"`
	Available     bool                  `dynamodbav:"available"`
	BookingStatus string                `dynamodbav:"booking_status"`
	CreatedAt     string                `dynamodbav:"created_at"`
}

// NewItem converts a room into its catalog item.
func NewItem(r *room.Room) Item {
	item := Item{
		RoomID:        r.ID,
		Name:          r.Name,
		Location:      r.Location,
		RoomType:      string(r.Category),
		PricePerNight: attributevalue.Number(r.NightlyRate.StringFixed(2)),
		Available:     r.Available,
		BookingStatus: r.BookingStatus(),
	}
	if r.Description != nil {
		item.Description = *r.Description
	}
	if r.ImageURL != nil {
		item.ImageURL = *r.ImageURL
	}
	if !r.CreatedAt.IsZero() {
		item.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return item
}

// DynamoCatalog implements room.CatalogSyncer.
type DynamoCatalog struct {
	client DynamoAPI
	table  string
}

var _ room.CatalogSyncer = (*DynamoCatalog)(nil)

func NewDynamoCatalog(client DynamoAPI, table string) *DynamoCatalog {
	return &DynamoCatalog{client: client, table: table}
}

func (c *DynamoCatalog) PutRoom(ctx context.Context, r *room.Room) error {
	av, err := attributevalue.MarshalMap(NewItem(r))
	if err != nil {
		return fmt.Errorf("marshal room item failed: %w", err)
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put room %s into %s failed: %w", r.ID, c.table, err)
	}
	return nil
}

func (c *DynamoCatalog) DeleteRoom(ctx context.Context, id string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.table),
		Key:       roomKey(id),
	})
	if err != nil {
		return fmt.Errorf("delete room %s from %s failed: %w", id, c.table, err)
	}
	return nil
}

// GetRoom returns the stored item, or false when the room is not in the catalog.
func (c *DynamoCatalog) GetRoom(ctx context.Context, id string) (*Item, bool, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key:       roomKey(id),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get room %s from %s failed: %w", id, c.table, err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}

	var item Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, fmt.Errorf("unmarshal room item failed: %w", err)
	}
	return &item, true, nil
}

// CreateTable creates the catalog table with room_id as hash key and waits
// until it is active.
func (c *DynamoCatalog) CreateTable(ctx context.Context) error {
	_, err := c.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(c.table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("room_id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("room_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
	})
	if err != nil {
		return fmt.Errorf("create table %s failed: %w", c.table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(c.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(c.table)}, tableWaitTimeout); err != nil {
		return fmt.Errorf("wait for table %s failed: %w", c.table, err)
	}
	return nil
}

func roomKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"room_id": &types.AttributeValueMemberS{Value: id},
	}
}
