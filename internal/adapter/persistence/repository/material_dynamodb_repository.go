package repository

import (
	"context"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultMaterialsTableName = "materials"

type materialItem struct {
	Code         string   `dynamodbav:"code"`
	Name         string   `dynamodbav:"name"`
	Price        string   `dynamodbav:"price"`
	LeadTimeDays int      `dynamodbav:"lead_time_days"`
	Properties   []string `dynamodbav:"properties"`
}

// MaterialDynamoRepository reads the material catalog from DynamoDB.
//
// Table requirements:
//   - PK: code (string)
type MaterialDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IMaterialRepository = (*MaterialDynamoRepository)(nil)

func NewMaterialDynamoRepository(ddb DynamoAPI, tableName string) *MaterialDynamoRepository {
	return &MaterialDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultMaterialsTableName),
	}
}

func (r *MaterialDynamoRepository) List(ctx context.Context) ([]entities.Material, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})

	materials := make([]entities.Material, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it materialItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			materials = append(materials, fromMaterialItem(it))
		}
	}
	return materials, nil
}

func (r *MaterialDynamoRepository) GetByCode(ctx context.Context, code string) (entities.Material, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Material{}, err
	}
	if len(out.Item) == 0 {
		return entities.Material{}, nil
	}

	var it materialItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Material{}, err
	}
	return fromMaterialItem(it), nil
}

// Put upserts a catalog entry.
func (r *MaterialDynamoRepository) Put(ctx context.Context, m entities.Material) error {
	av, err := attributevalue.MarshalMap(toMaterialItem(m))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func toMaterialItem(m entities.Material) materialItem {
	props := m.Properties
	if props == nil {
		props = []string{}
	}
	return materialItem{
		Code:         m.Code,
		Name:         m.Name,
		Price:        formatDecimal(m.Price, priceFactorScale),
		LeadTimeDays: m.LeadTimeDays,
		Properties:   props,
	}
}

func fromMaterialItem(it materialItem) entities.Material {
	return entities.Material{
		Code:         it.Code,
		Name:         it.Name,
		Price:        parseDecimal(it.Price),
		LeadTimeDays: it.LeadTimeDays,
		Properties:   it.Properties,
	}
}
