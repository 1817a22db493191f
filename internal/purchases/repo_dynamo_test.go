package purchases

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
)

// fakeDynamo models one table keyed by (user_id, sk) and returns pages of pageSize items.
type fakeDynamo struct {
	mu       sync.Mutex
	items    []map[string]types.AttributeValue
	pageSize int
	queries  int
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if str(it["user_id"]) == str(in.Item["user_id"]) && str(it["sk"]) == str(in.Item["sk"]) {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.items = append(f.items, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++

	uid := str(in.ExpressionAttributeValues[":uid"])
	from := str(in.ExpressionAttributeValues[":from"])
	to, bounded := in.ExpressionAttributeValues[":to"]

	var matched []map[string]types.AttributeValue
	for _, it := range f.items {
		sk := str(it["sk"])
		if str(it["user_id"]) != uid || sk < from {
			continue
		}
		if bounded && sk > str(to) {
			continue
		}
		matched = append(matched, it)
	}
	sort.Slice(matched, func(i, j int) bool { return str(matched[i]["sk"]) > str(matched[j]["sk"]) })

	if in.ExclusiveStartKey != nil {
		after := str(in.ExclusiveStartKey["sk"])
		for i, it := range matched {
			if str(it["sk"]) == after {
				matched = matched[i+1:]
				break
			}
		}
	}
	out := &dynamodb.QueryOutput{}
	if f.pageSize > 0 && len(matched) > f.pageSize {
		matched = matched[:f.pageSize]
		last := matched[len(matched)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{"user_id": last["user_id"], "sk": last["sk"]}
	}
	out.Items = matched
	return out, nil
}

func seedDynamo(t *testing.T, repo *DynamoRepo, base time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), Purchase{
			ID:           "p" + string(rune('a'+i)),
			UserID:       "u1",
			BeverageID:   int64(i + 1),
			BeverageName: "drink",
			Category:     beverages.CategoryLatte,
			Mood:         beverages.MoodHappy,
			Price:        decimal.RequireFromString("2.50"),
			PurchasedAt:  base.Add(time.Duration(i) * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestDynamoRepoListPaginatesNewestFirst(t *testing.T) {
	fake := &fakeDynamo{pageSize: 2}
	repo := NewDynamoRepo(fake, "")
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	seedDynamo(t, repo, base, 5)

	list, err := repo.ListByUser(context.Background(), "u1", base.Add(24*time.Hour), 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 purchases since day 1, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if !list[i-1].PurchasedAt.After(list[i].PurchasedAt) {
			t.Fatalf("expected newest first at %d", i)
		}
	}
	if list[0].BeverageID != 5 || list[0].Price.StringFixed(2) != "2.50" {
		t.Fatalf("unexpected newest purchase %+v", list[0])
	}
	if fake.queries < 2 {
		t.Fatalf("expected pagination across pages, got %d queries", fake.queries)
	}

	limited, err := repo.ListByUser(context.Background(), "u1", base, 3)
	if err != nil {
		t.Fatalf("ListByUser limited: %v", err)
	}
	if len(limited) != 3 {
		t.Fatalf("expected limit 3, got %d", len(limited))
	}
}

func TestDynamoRepoSumBetweenExcludesUpperBound(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewDynamoRepo(fake, "purchases")
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC) // Monday
	seedDynamo(t, repo, base, 8)                        // Monday .. next Monday

	from, to := WeekWindow(base)
	total, err := repo.SumBetween(context.Background(), "u1", from, to)
	if err != nil {
		t.Fatalf("SumBetween: %v", err)
	}
	if total.StringFixed(2) != "17.50" {
		t.Fatalf("expected 7 purchases totalling 17.50, got %s", total)
	}
}

func TestDynamoRepoRejectsDuplicateKey(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewDynamoRepo(fake, "purchases")
	p := Purchase{ID: "dup", UserID: "u1", BeverageID: 1, Mood: beverages.MoodHappy, Price: decimal.NewFromInt(1), PurchasedAt: time.Now()}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	var conflict *types.ConditionalCheckFailedException
	if err := repo.Create(context.Background(), p); !errors.As(err, &conflict) {
		t.Fatalf("expected conditional check failure, got %v", err)
	}
}
