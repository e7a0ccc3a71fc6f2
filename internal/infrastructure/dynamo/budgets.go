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

// BudgetRepo provides typed DynamoDB operations for the budgets table.
// PK: budget_id, user_id-index GSI for per-user listing.
type BudgetRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBudgetRepo(client *dynamodb.Client, tableName string) *BudgetRepo {
	return &BudgetRepo{client: client, tableName: tableName}
}

func (r *BudgetRepo) Put(ctx context.Context, b *domain.Budget) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal budget: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BudgetRepo) Get(ctx context.Context, budgetID string) (*domain.Budget, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("budget_id", budgetID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.Wrap(domain.ErrEntityNotFound, "budget %s", budgetID)
	}
	var b domain.Budget
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepo) ListByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "user_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	var budgets []domain.Budget
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *BudgetRepo) Update(ctx context.Context, budgetID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("budget_id", budgetID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// Archive soft-deletes a budget; expenses under it stay queryable.
func (r *BudgetRepo) Archive(ctx context.Context, budgetID string) error {
	return r.Update(ctx, budgetID, map[string]interface{}{
		"active":      false,
		"archived_at": time.Now().UTC().Format(time.RFC3339),
	})
}
