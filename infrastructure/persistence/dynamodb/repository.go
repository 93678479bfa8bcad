// Package dynamodb persists the store collections as single-table-per-entity
// DynamoDB items keyed on PK. Filters run server-side through the expression
// builder; ordering and pagination are applied after the scan, matching the
// document-store semantics the query layer expects.
package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awstypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	apperrors "storefront-backend/pkg/errors"
)

// scanAll runs a filtered scan across every page and unmarshals the items
// into out, which must be a pointer to a slice of item structs.
func scanAll[T any](ctx context.Context, client *dynamodb.Client, tableName string, expr *expression.Expression) ([]T, error) {
	var items []T
	var startKey map[string]awstypes.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName:         &tableName,
			ExclusiveStartKey: startKey,
		}
		if expr != nil {
			input.FilterExpression = expr.Filter()
			input.ExpressionAttributeNames = expr.Names()
			input.ExpressionAttributeValues = expr.Values()
		}

		result, err := client.Scan(ctx, input)
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan", err)
		}

		var page []T
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal", err)
		}
		items = append(items, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return items, nil
}

// getItem fetches one item by its PK. The bool reports presence.
func getItem[T any](ctx context.Context, client *dynamodb.Client, tableName, id string) (*T, bool, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		return nil, false, apperrors.NewDatabaseError("marshal key", err)
	}

	result, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return nil, false, apperrors.NewDatabaseError("get", err)
	}
	if result.Item == nil {
		return nil, false, nil
	}

	var item T
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, false, apperrors.NewDatabaseError("unmarshal", err)
	}
	return &item, true, nil
}

// putItem writes one item unconditionally.
func putItem(ctx context.Context, client *dynamodb.Client, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewDatabaseError("marshal", err)
	}

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      av,
	})
	if err != nil {
		return apperrors.NewDatabaseError("put", err)
	}
	return nil
}

// deleteItem removes one item by its PK.
func deleteItem(ctx context.Context, client *dynamodb.Client, tableName, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		return apperrors.NewDatabaseError("marshal key", err)
	}

	_, err = client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete", err)
	}
	return nil
}

// createdWithin appends a CreatedAt range condition. RFC3339 UTC timestamps
// compare correctly as strings.
func createdWithin(cond expression.ConditionBuilder, hasCond bool, start, end time.Time) (expression.ConditionBuilder, bool) {
	rangeCond := expression.Name("CreatedAt").Between(
		expression.Value(start.UTC().Format(time.RFC3339Nano)),
		expression.Value(end.UTC().Format(time.RFC3339Nano)),
	)
	if !hasCond {
		return rangeCond, true
	}
	return cond.And(rangeCond), true
}

// buildFilter wraps a condition into a scan expression, or nil when no
// condition applies.
func buildFilter(cond expression.ConditionBuilder, hasCond bool) (*expression.Expression, error) {
	if !hasCond {
		return nil, nil
	}
	expr, err := expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build expression", err)
	}
	return &expr, nil
}
