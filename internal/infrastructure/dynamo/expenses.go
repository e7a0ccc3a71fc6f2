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

// ExpenseRepo provides typed DynamoDB operations for the expenses table.
// PK: expense_id, budget_id-index GSI for per-budget listing.
type ExpenseRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewExpenseRepo(client *dynamodb.Client, tableName string) *ExpenseRepo {
	return &ExpenseRepo{client: client, tableName: tableName}
}

func (r *ExpenseRepo) Put(ctx context.Context, e *domain.Expense) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal expense: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ExpenseRepo) Get(ctx context.Context, expenseID string) (*domain.Expense, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("expense_id", expenseID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.Wrap(domain.ErrEntityNotFound, "expense %s", expenseID)
	}
	var e domain.Expense
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) ListByBudget(ctx context.Context, budgetID string) ([]domain.Expense, error) {
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
	var expenses []domain.Expense
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepo) Update(ctx context.Context, expenseID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("expense_id", expenseID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ExpenseRepo) HardDelete(ctx context.Context, expenseID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("expense_id", expenseID),
	})
	return err
}
