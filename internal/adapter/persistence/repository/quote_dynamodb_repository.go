package repository

import (
	"context"
	"fmt"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "quotes"

type quotePricingItem struct {
	MaterialID          string `dynamodbav:"material_id"`
	MaterialName        string `dynamodbav:"material_name"`
	MaterialPriceFactor string `dynamodbav:"material_price_factor"`
	Quantity            int    `dynamodbav:"quantity"`
	VolumeCm3           string `dynamodbav:"volume_cm3"`
	UnitPrice           string `dynamodbav:"unit_price"`
	QuantityDiscount    string `dynamodbav:"quantity_discount"`
	TotalPrice          string `dynamodbav:"total_price"`
}

type quoteItem struct {
	ID        string            `dynamodbav:"id"`
	FileID    string            `dynamodbav:"file_id"`
	Status    string            `dynamodbav:"status"`
	CreatedAt string            `dynamodbav:"created_at"`
	ExpiresAt string            `dynamodbav:"expires_at"`
	Pricing   *quotePricingItem `dynamodbav:"pricing,omitempty"`
}

// QuoteDynamoRepository persists quotes in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Status transitions are conditional writes on the stored status; the order
// repository moves quotes from ready to ordered inside its own transaction.
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, interfaces.ErrRecordExists
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// Complete stores the pricing group and moves the quote to ready, provided it
// is still a draft.
func (r *QuoteDynamoRepository) Complete(ctx context.Context, id string, pricing entities.QuotePricing) (entities.Quote, error) {
	p, err := attributevalue.Marshal(toQuotePricingItem(pricing))
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :draft"),
		UpdateExpression:    aws.String("SET #status = :ready, #pricing = :pricing"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":draft":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusDraft)},
			":ready":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusReady)},
			":pricing": p,
		},
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#status":  "status",
			"#pricing": "pricing",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, fmt.Errorf("complete quote %s: %w", id, interfaces.ErrStaleState)
		}
		return entities.Quote{}, err
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuotePricingItem(p entities.QuotePricing) quotePricingItem {
	return quotePricingItem{
		MaterialID:          p.MaterialID,
		MaterialName:        p.MaterialName,
		MaterialPriceFactor: formatDecimal(p.MaterialPriceFactor, priceFactorScale),
		Quantity:            p.Quantity,
		VolumeCm3:           formatDecimal(p.VolumeCm3, volumeScale),
		UnitPrice:           formatDecimal(p.UnitPrice, moneyScale),
		QuantityDiscount:    formatDecimal(p.QuantityDiscount, moneyScale),
		TotalPrice:          formatDecimal(p.TotalPrice, moneyScale),
	}
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:        q.ID,
		FileID:    q.FileID,
		Status:    string(q.Status),
		CreatedAt: formatTime(q.CreatedAt),
		ExpiresAt: formatTime(q.ExpiresAt),
	}
	if q.Pricing != nil {
		p := toQuotePricingItem(*q.Pricing)
		it.Pricing = &p
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID:        it.ID,
		FileID:    it.FileID,
		Status:    entities.QuoteStatus(it.Status),
		CreatedAt: parseTime(it.CreatedAt),
		ExpiresAt: parseTime(it.ExpiresAt),
	}
	if it.Pricing != nil {
		q.Pricing = &entities.QuotePricing{
			MaterialID:          it.Pricing.MaterialID,
			MaterialName:        it.Pricing.MaterialName,
			MaterialPriceFactor: parseDecimal(it.Pricing.MaterialPriceFactor),
			Quantity:            it.Pricing.Quantity,
			VolumeCm3:           parseDecimal(it.Pricing.VolumeCm3),
			UnitPrice:           parseDecimal(it.Pricing.UnitPrice),
			QuantityDiscount:    parseDecimal(it.Pricing.QuantityDiscount),
			TotalPrice:          parseDecimal(it.Pricing.TotalPrice),
		}
	}
	return q
}
