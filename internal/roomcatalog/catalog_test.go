package roomcatalog

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	table string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(m map[string]types.AttributeValue) string {
	return m["room_id"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.table = aws.ToString(in.TableName)
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, keyOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.table = aws.ToString(in.TableName)
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamo) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   in.TableName,
			TableStatus: types.TableStatusActive,
		},
	}, nil
}

func sampleRoom() *room.Room {
	desc := "Harbour view"
	return &room.Room{
		ID:          "room-1",
		Name:        "Sea View",
		Location:    "Dublin",
		Category:    room.CategoryPremium,
		NightlyRate: decimal.RequireFromString("120.5"),
		Description: &desc,
		Available:   false,
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewItem(t *testing.T) {
	item := NewItem(sampleRoom())

	assert.Equal(t, "room-1", item.RoomID)
	assert.Equal(t, "premium", item.RoomType)
	assert.Equal(t, "120.50", string(item.PricePerNight))
	assert.Equal(t, "Harbour view", item.Description)
	assert.Equal(t, "", item.ImageURL)
	assert.Equal(t, "booked", item.BookingStatus)
	assert.Equal(t, "2025-01-02T03:04:05Z", item.CreatedAt)
}

func TestDynamoCatalog_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeDynamo()
	catalog := NewDynamoCatalog(client, "YugoRooms")

	require.NoError(t, catalog.PutRoom(ctx, sampleRoom()))
	assert.Equal(t, "YugoRooms", client.table)

	price, ok := client.items["room-1"]["price_per_night"].(*types.AttributeValueMemberN)
	require.True(t, ok, "price must be stored as a number")
	assert.Equal(t, "120.50", price.Value)

	item, found, err := catalog.GetRoom(ctx, "room-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sea View", item.Name)
	assert.False(t, item.Available)

	require.NoError(t, catalog.DeleteRoom(ctx, "room-1"))
	_, found, err = catalog.GetRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDynamoCatalog_CreateTable(t *testing.T) {
	client := newFakeDynamo()
	catalog := NewDynamoCatalog(client, "YugoRooms")

	require.NoError(t, catalog.CreateTable(context.Background()))
	assert.Equal(t, "YugoRooms", client.table)
}
