package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
)

// DynamoAPI is the subset of the DynamoDB client the repo uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoRepo persists purchases in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: sk (string) = fixed-width UTC timestamp + "#" + purchase id
type DynamoRepo struct {
	ddb       DynamoAPI
	tableName string
}

// sortKeyLayout keeps a constant width so keys sort chronologically as strings.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z"

type purchaseItem struct {
	UserID       string `dynamodbav:"user_id"`
	SK           string `dynamodbav:"sk"`
	ID           string `dynamodbav:"id"`
	BeverageID   int64  `dynamodbav:"beverage_id"`
	BeverageName string `dynamodbav:"beverage_name"`
	Category     string `dynamodbav:"category"`
	Mood         string `dynamodbav:"mood"`
	Price        string `dynamodbav:"price"`
	PurchasedAt  string `dynamodbav:"purchased_at"`
}

var _ Repo = (*DynamoRepo)(nil)

func NewDynamoRepo(ddb DynamoAPI, tableName string) *DynamoRepo {
	if tableName == "" {
		tableName = "purchases"
	}
	return &DynamoRepo{ddb: ddb, tableName: tableName}
}

func (r *DynamoRepo) Create(ctx context.Context, p Purchase) error {
	av, err := attributevalue.MarshalMap(toItem(p))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{
			"#sk": "sk",
		},
	})
	return err
}

func (r *DynamoRepo) ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]Purchase, error) {
	var out []Purchase
	err := r.query(ctx, userID, since, time.Time{}, func(it purchaseItem) (bool, error) {
		p, err := fromItem(it)
		if err != nil {
			return false, err
		}
		out = append(out, p)
		return limit <= 0 || len(out) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DynamoRepo) SumBetween(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.query(ctx, userID, from, to, func(it purchaseItem) (bool, error) {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return false, fmt.Errorf("parse price for purchase %s: %w", it.ID, err)
		}
		total = total.Add(price)
		return true, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// query walks a user's partition newest first between from and to (zero to = open ended),
// following pagination until visit returns false.
func (r *DynamoRepo) query(ctx context.Context, userID string, from, to time.Time, visit func(purchaseItem) (bool, error)) error {
	keyCond := "user_id = :uid AND sk >= :from"
	values := map[string]types.AttributeValue{
		":uid":  &types.AttributeValueMemberS{Value: userID},
		":from": &types.AttributeValueMemberS{Value: from.UTC().Format(sortKeyLayout)},
	}
	if !to.IsZero() {
		keyCond = "user_id = :uid AND sk BETWEEN :from AND :to"
		// "~" sorts after every id character, so this covers all purchases stamped before to.
		values[":to"] = &types.AttributeValueMemberS{Value: to.UTC().Add(-time.Nanosecond).Format(sortKeyLayout) + "#~"}
	}

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    aws.String(keyCond),
			ExpressionAttributeValues: values,
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return fmt.Errorf("dynamodb query %s: %w", r.tableName, err)
		}
		for _, raw := range out.Items {
			var it purchaseItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return err
			}
			more, err := visit(it)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func sortKey(p Purchase) string {
	return p.PurchasedAt.UTC().Format(sortKeyLayout) + "#" + p.ID
}

func toItem(p Purchase) purchaseItem {
	return purchaseItem{
		UserID:       p.UserID,
		SK:           sortKey(p),
		ID:           p.ID,
		BeverageID:   p.BeverageID,
		BeverageName: p.BeverageName,
		Category:     string(p.Category),
		Mood:         string(p.Mood),
		Price:        p.Price.StringFixed(2),
		PurchasedAt:  p.PurchasedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromItem(it purchaseItem) (Purchase, error) {
	price, err := decimal.NewFromString(it.Price)
	if err != nil {
		return Purchase{}, fmt.Errorf("parse price for purchase %s: %w", it.ID, err)
	}
	at, err := time.Parse(time.RFC3339Nano, it.PurchasedAt)
	if err != nil {
		return Purchase{}, fmt.Errorf("parse purchased_at for purchase %s: %w", it.ID, err)
	}
	return Purchase{
		ID:           it.ID,
		UserID:       it.UserID,
		BeverageID:   it.BeverageID,
		BeverageName: it.BeverageName,
		Category:     beverages.NormalizeCategory(it.Category),
		Mood:         beverages.Mood(it.Mood),
		Price:        price,
		PurchasedAt:  at,
	}, nil
}
