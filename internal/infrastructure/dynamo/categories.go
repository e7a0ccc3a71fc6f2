package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
)

// CategoryRepo provides typed DynamoDB operations for the categories table.
// PK: category_id, budget_id-index GSI for per-budget listing.
type CategoryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCategoryRepo(client *dynamodb.Client, tableName string) *CategoryRepo {
	return &CategoryRepo{client: client, tableName: tableName}
}

func (r *CategoryRepo) Put(ctx context.Context, c *domain.Category) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CategoryRepo) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("category_id", categoryID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.Wrap(domain.ErrEntityNotFound, "category %s", categoryID)
	}
	var c domain.Category
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) ListByBudget(ctx context.Context, budgetID string) ([]domain.Category, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("budget_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "budget_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: budgetID}},
	})
	if err != nil {
		return nil, err
	}
	var categories []domain.Category
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepo) Update(ctx context.Context, categoryID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("category_id", categoryID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *CategoryRepo) HardDelete(ctx context.Context, categoryID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("category_id", categoryID),
	})
	return err
}
