package repository

import (
	"context"
	"errors"
	"fmt"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

// Positions of the writes inside the order transaction.
const (
	orderPutIndex   = 0
	quoteMarkIndex  = 1
	conditionFailed = "ConditionalCheckFailed"
)

type orderItem struct {
	ID                 string  `dynamodbav:"id"`
	QuoteID            string  `dynamodbav:"quote_id"`
	CustomerName       string  `dynamodbav:"customer_name"`
	CustomerEmail      string  `dynamodbav:"customer_email"`
	CustomerCompany    *string `dynamodbav:"customer_company,omitempty"`
	PaymentMethod      string  `dynamodbav:"payment_method"`
	PaymentStatus      string  `dynamodbav:"payment_status"`
	TotalAmount        string  `dynamodbav:"total_amount"`
	Currency           string  `dynamodbav:"currency"`
	CreatedAt          string  `dynamodbav:"created_at"`
	ExpectedDeliveryAt string  `dynamodbav:"expected_delivery_at"`
}

// OrderDynamoRepository persists orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Orders are created together with the ready -> ordered move of their quote
// in one TransactWriteItems call against both tables.
type OrderDynamoRepository struct {
	ddb         DynamoAPI
	tableName   string
	quotesTable string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName, quotesTable string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:         ddb,
		tableName:   tableOrDefault(tableName, defaultOrdersTableName),
		quotesTable: tableOrDefault(quotesTable, defaultQuotesTableName),
	}
}

func (r *OrderDynamoRepository) CreateForQuote(ctx context.Context, o entities.Order) (entities.Order, error) {
	in, err := r.buildCreateOrderTransaction(o)
	if err != nil {
		return entities.Order{}, err
	}

	if _, err := r.ddb.TransactWriteItems(ctx, in); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if cancelledBy(tce, quoteMarkIndex) {
				return entities.Order{}, fmt.Errorf("order quote %s: %w", o.QuoteID, interfaces.ErrStaleState)
			}
			if cancelledBy(tce, orderPutIndex) {
				return entities.Order{}, interfaces.ErrRecordExists
			}
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) buildCreateOrderTransaction(o entities.Order) (*dynamodb.TransactWriteItemsInput, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return nil, err
	}

	return &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			orderPutIndex: {
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			quoteMarkIndex: {
				Update: &types.Update{
					TableName:           aws.String(r.quotesTable),
					Key:                 idKey(o.QuoteID),
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :ready"),
					UpdateExpression:    aws.String("SET #status = :ordered"),
					ExpressionAttributeNames: map[string]string{
						"#id":     "id",
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":ready":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusReady)},
						":ordered": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusOrdered)},
					},
				},
			},
		},
	}, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// UpdatePaymentStatus applies only while the order is pending or already
// holds status.
func (r *OrderDynamoRepository) UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND (#payment_status = :pending OR #payment_status = :status)"),
		UpdateExpression:    aws.String("SET #payment_status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#payment_status": "payment_status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
			":status":  &types.AttributeValueMemberS{Value: string(status)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, fmt.Errorf("update payment of order %s: %w", id, interfaces.ErrStaleState)
		}
		return entities.Order{}, err
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func cancelledBy(tce *types.TransactionCanceledException, index int) bool {
	if index >= len(tce.CancellationReasons) {
		return false
	}
	return aws.ToString(tce.CancellationReasons[index].Code) == conditionFailed
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:                 o.ID,
		QuoteID:            o.QuoteID,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		CustomerCompany:    o.CustomerCompany,
		PaymentMethod:      string(o.PaymentMethod),
		PaymentStatus:      string(o.PaymentStatus),
		TotalAmount:        formatDecimal(o.TotalAmount, moneyScale),
		Currency:           o.Currency,
		CreatedAt:          formatTime(o.CreatedAt),
		ExpectedDeliveryAt: formatTime(o.ExpectedDeliveryAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:                 it.ID,
		QuoteID:            it.QuoteID,
		CustomerName:       it.CustomerName,
		CustomerEmail:      it.CustomerEmail,
		CustomerCompany:    it.CustomerCompany,
		PaymentMethod:      entities.PaymentMethod(it.PaymentMethod),
		PaymentStatus:      entities.PaymentStatus(it.PaymentStatus),
		TotalAmount:        parseDecimal(it.TotalAmount),
		Currency:           it.Currency,
		CreatedAt:          parseTime(it.CreatedAt),
		ExpectedDeliveryAt: parseTime(it.ExpectedDeliveryAt),
	}
}
