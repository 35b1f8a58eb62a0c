package repository

import (
	"context"
	"fmt"
	"time"

	"quote3d/internal/domain/entities"
	"quote3d/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultFilesTableName = "files"

type geometryItem struct {
	X           float64 `dynamodbav:"x"`
	Y           float64 `dynamodbav:"y"`
	Z           float64 `dynamodbav:"z"`
	Volume      float64 `dynamodbav:"volume"`
	VolumeCm3   float64 `dynamodbav:"volume_cm3"`
	SurfaceArea float64 `dynamodbav:"surface_area"`
}

type fileItem struct {
	ID           string        `dynamodbav:"id"`
	OriginalName string        `dynamodbav:"original_name"`
	StoragePath  string        `dynamodbav:"storage_path"`
	SizeBytes    int64         `dynamodbav:"size_bytes"`
	MimeType     string        `dynamodbav:"mime_type"`
	Status       string        `dynamodbav:"status"`
	Geometry     *geometryItem `dynamodbav:"geometry,omitempty"`
	UploadedAt   string        `dynamodbav:"uploaded_at"`
	ProcessedAt  string        `dynamodbav:"processed_at,omitempty"`
}

// FileDynamoRepository persists uploaded files in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type FileDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IFileRepository = (*FileDynamoRepository)(nil)

func NewFileDynamoRepository(ddb DynamoAPI, tableName string) *FileDynamoRepository {
	return &FileDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultFilesTableName),
	}
}

func (r *FileDynamoRepository) Create(ctx context.Context, f entities.File) (entities.File, error) {
	av, err := attributevalue.MarshalMap(toFileItem(f))
	if err != nil {
		return entities.File{}, err
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
			return entities.File{}, interfaces.ErrRecordExists
		}
		return entities.File{}, err
	}
	return f, nil
}

// GetByID always reads consistently; the geometry poller depends on seeing the
// extraction result as soon as it is written.
func (r *FileDynamoRepository) GetByID(ctx context.Context, id string) (entities.File, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.File{}, err
	}
	if len(out.Item) == 0 {
		return entities.File{}, nil
	}

	var it fileItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.File{}, err
	}
	return fromFileItem(it), nil
}

// FinishExtraction records the extraction result. It only applies to files
// still in process.
func (r *FileDynamoRepository) FinishExtraction(ctx context.Context, id string, status entities.FileStatus, geometry *entities.GeometryProperties, processedAt time.Time) (entities.File, error) {
	expr := "SET #status = :status, #processed_at = :processed_at"
	names := map[string]string{
		"#status":       "status",
		"#processed_at": "processed_at",
	}
	values := map[string]types.AttributeValue{
		":status":       &types.AttributeValueMemberS{Value: string(status)},
		":processed_at": &types.AttributeValueMemberS{Value: formatTime(processedAt)},
		":in_process":   &types.AttributeValueMemberS{Value: string(entities.FileStatusInProcess)},
	}
	if geometry != nil {
		g, err := attributevalue.Marshal(toGeometryItem(*geometry))
		if err != nil {
			return entities.File{}, err
		}
		expr += ", #geometry = :geometry"
		names["#geometry"] = "geometry"
		values[":geometry"] = g
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :in_process"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.File{}, fmt.Errorf("finish extraction of file %s: %w", id, interfaces.ErrStaleState)
		}
		return entities.File{}, err
	}

	var it fileItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.File{}, err
	}
	return fromFileItem(it), nil
}

func toGeometryItem(g entities.GeometryProperties) geometryItem {
	return geometryItem{
		X:           g.BoundingBox.X,
		Y:           g.BoundingBox.Y,
		Z:           g.BoundingBox.Z,
		Volume:      g.Volume,
		VolumeCm3:   g.VolumeCm3,
		SurfaceArea: g.SurfaceArea,
	}
}

func toFileItem(f entities.File) fileItem {
	it := fileItem{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		StoragePath:  f.StoragePath,
		SizeBytes:    f.SizeBytes,
		MimeType:     f.MimeType,
		Status:       string(f.Status),
		UploadedAt:   formatTime(f.UploadedAt),
	}
	if f.Geometry != nil {
		g := toGeometryItem(*f.Geometry)
		it.Geometry = &g
	}
	if f.ProcessedAt != nil {
		it.ProcessedAt = formatTime(*f.ProcessedAt)
	}
	return it
}

func fromFileItem(it fileItem) entities.File {
	f := entities.File{
		ID:           it.ID,
		OriginalName: it.OriginalName,
		StoragePath:  it.StoragePath,
		SizeBytes:    it.SizeBytes,
		MimeType:     it.MimeType,
		Status:       entities.FileStatus(it.Status),
		UploadedAt:   parseTime(it.UploadedAt),
	}
	if it.Geometry != nil {
		f.Geometry = &entities.GeometryProperties{
			BoundingBox: entities.BoundingBox{X: it.Geometry.X, Y: it.Geometry.Y, Z: it.Geometry.Z},
			Volume:      it.Geometry.Volume,
			VolumeCm3:   it.Geometry.VolumeCm3,
			SurfaceArea: it.Geometry.SurfaceArea,
		}
	}
	if it.ProcessedAt != "" {
		p := parseTime(it.ProcessedAt)
		f.ProcessedAt = &p
	}
	return f
}
