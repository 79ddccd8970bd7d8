package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/seantiz/directory/internal/cloud"
	"github.com/seantiz/directory/internal/model"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Compile-time interface satisfaction check.
var _ Store = (*DynamoStore)(nil)

// DynamoStore implements Store on a DynamoDB table keyed by "id".
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamoClient builds a DynamoDB client from the shared AWS config.
func NewDynamoClient(awsCfg aws.Config, opts cloud.Options) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if ep := opts.BaseEndpoint(); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

// NewDynamoStore wraps client for the given table.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *DynamoStore) Close() error {
	return nil
}

// Put writes the employee as a single item, replacing any item with the same id.
func (s *DynamoStore) Put(ctx context.Context, e *model.Employee) error {
	if e.ID == "" {
		return ErrMissingID
	}

	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal employee: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return s.translateError(err, "PutItem")
	}
	return nil
}

// Scan reads the whole table, following LastEvaluatedKey across pages.
func (s *DynamoStore) Scan(ctx context.Context) ([]model.Employee, error) {
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	var employees []model.Employee
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, s.translateError(err, "Scan")
		}

		var batch []model.Employee
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal employees: %w", err)
		}
		employees = append(employees, batch...)
	}

	return employees, nil
}

func (s *DynamoStore) translateError(err error, operation string) error {
	var notFound *ddbtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s: %s", ErrTableNotFound, operation, s.table)
	}
	return fmt.Errorf("%s failed for table %s: %w", operation, s.table, err)
}
