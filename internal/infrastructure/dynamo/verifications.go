package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
)

// VerificationRepo stores single-use OTP challenge records.
// PK: verification_id. Records are never updated; expiry is enforced by the
// orchestrator on read, and the expires_at TTL attribute reaps stale rows.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

func (r *VerificationRepo) Put(ctx context.Context, v *domain.Verification) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return domain.Wrap(domain.ErrVerificationCreation, "marshal verification")
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return domain.Wrap(domain.ErrVerificationCreation, "put verification")
	}
	return nil
}

func (r *VerificationRepo) GetByID(ctx context.Context, verificationID string) (*domain.Verification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("verification_id", verificationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.Wrap(domain.ErrVerificationNotFound, "verification %s", verificationID)
	}
	var v domain.Verification
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
