package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	apperrors "github.com/allisson/credstash/internal/errors"
)

// Attribute names of the credstash table layout.
const (
	attrName     = "name"
	attrVersion  = "version"
	attrKey      = "key"
	attrContents = "contents"
	attrHMAC     = "hmac"
	attrDigest   = "digest"
)

// tableCreateTimeout bounds how long CreateTable waits for the table to become active.
const tableCreateTimeout = 2 * time.Minute

// DynamoDBClient defines the DynamoDB operations used by DynamoDBCredentialRepository.
type DynamoDBClient interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	GetItem(
		ctx context.Context,
		params *dynamodb.GetItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)
	PutItem(
		ctx context.Context,
		params *dynamodb.PutItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(
		ctx context.Context,
		params *dynamodb.CreateTableInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.CreateTableOutput, error)
	DescribeTable(
		ctx context.Context,
		params *dynamodb.DescribeTableInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.DescribeTableOutput, error)
}

// NewDynamoDBClient builds a DynamoDB client, optionally pointed at a custom endpoint
// such as DynamoDB Local.
func NewDynamoDBClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// DynamoDBCredentialRepository implements CredentialRepository on a DynamoDB table keyed
// by name (hash) and version (range).
type DynamoDBCredentialRepository struct {
	client DynamoDBClient
	table  string
}

// NewDynamoDBCredentialRepository creates a repository backed by table.
func NewDynamoDBCredentialRepository(client DynamoDBClient, table string) *DynamoDBCredentialRepository {
	return &DynamoDBCredentialRepository{client: client, table: table}
}

// Create writes the record only if no item with the same key exists.
func (d *DynamoDBCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(d.table),
		Item:                     marshalItem(credential),
		ConditionExpression:      aws.String("attribute_not_exists(#n)"),
		ExpressionAttributeNames: map[string]string{"#n": attrName},
	})
	if err != nil {
		var conditionErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionErr) {
			return credentialDomain.ErrVersionConflict
		}
		return storageError("failed to create credential", err)
	}
	return nil
}

// GetLatest queries the name partition newest-first with a strongly consistent read.
func (d *DynamoDBCredentialRepository) GetLatest(
	ctx context.Context,
	name string,
) (*credentialDomain.Credential, error) {
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(d.table),
		KeyConditionExpression:   aws.String("#n = :name"),
		ExpressionAttributeNames: map[string]string{"#n": attrName},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
		ConsistentRead:   aws.Bool(true),
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, storageError("failed to get latest credential", err)
	}
	if len(out.Items) == 0 {
		return nil, credentialDomain.ErrCredentialNotFound
	}

	return unmarshalItem(out.Items[0])
}

// GetByVersion reads a single item by its full key.
func (d *DynamoDBCredentialRepository) GetByVersion(
	ctx context.Context,
	name, version string,
) (*credentialDomain.Credential, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			attrName:    &types.AttributeValueMemberS{Value: name},
			attrVersion: &types.AttributeValueMemberS{Value: version},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, storageError("failed to get credential by version", err)
	}
	if len(out.Item) == 0 {
		return nil, credentialDomain.ErrCredentialNotFound
	}

	return unmarshalItem(out.Item)
}

// List scans every page of the table projecting only name and version.
func (d *DynamoDBCredentialRepository) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:                aws.String(d.table),
		ProjectionExpression:     aws.String("#n, #v"),
		ExpressionAttributeNames: map[string]string{"#n": attrName, "#v": attrVersion},
	})

	credentials := make([]*credentialDomain.Credential, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storageError("failed to list credentials", err)
		}
		for _, item := range page.Items {
			name, err := stringAttr(item, attrName)
			if err != nil {
				return nil, err
			}
			version, err := stringAttr(item, attrVersion)
			if err != nil {
				return nil, err
			}
			credentials = append(credentials, &credentialDomain.Credential{Name: name, Version: version})
		}
	}

	sortCredentials(credentials)
	return credentials, nil
}

// CreateTable creates the credstash table and waits until it is active. An existing
// table is left untouched.
func (d *DynamoDBCredentialRepository) CreateTable(ctx context.Context) error {
	_, err := d.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(d.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrName), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrVersion), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrName), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(attrVersion), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return storageError("failed to create table", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(d.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.table)}, tableCreateTimeout); err != nil {
		return storageError("failed waiting for table", err)
	}
	return nil
}

// marshalItem encodes a record with credstash attribute names and encodings.
func marshalItem(credential *credentialDomain.Credential) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrName:     &types.AttributeValueMemberS{Value: credential.Name},
		attrVersion:  &types.AttributeValueMemberS{Value: credential.Version},
		attrKey:      &types.AttributeValueMemberS{Value: base64.StdEncoding.EncodeToString(credential.WrappedKey)},
		attrContents: &types.AttributeValueMemberS{Value: base64.StdEncoding.EncodeToString(credential.Ciphertext)},
		attrHMAC:     &types.AttributeValueMemberS{Value: credential.HMAC},
		attrDigest:   &types.AttributeValueMemberS{Value: string(credential.Digest)},
	}
}

// unmarshalItem decodes a credstash item. Items written before digests were recorded
// carry no digest attribute and use the default.
func unmarshalItem(item map[string]types.AttributeValue) (*credentialDomain.Credential, error) {
	var (
		credential credentialDomain.Credential
		err        error
		key        string
		contents   string
	)

	if credential.Name, err = stringAttr(item, attrName); err != nil {
		return nil, err
	}
	if credential.Version, err = stringAttr(item, attrVersion); err != nil {
		return nil, err
	}
	if key, err = stringAttr(item, attrKey); err != nil {
		return nil, err
	}
	if contents, err = stringAttr(item, attrContents); err != nil {
		return nil, err
	}
	if credential.HMAC, err = stringAttr(item, attrHMAC); err != nil {
		return nil, err
	}

	credential.Digest = cryptoDomain.DefaultDigest
	if _, ok := item[attrDigest]; ok {
		digest, err := stringAttr(item, attrDigest)
		if err != nil {
			return nil, err
		}
		credential.Digest = cryptoDomain.Digest(digest)
	}

	if credential.WrappedKey, err = base64.StdEncoding.DecodeString(key); err != nil {
		return nil, apperrors.WithCause(errMalformedRecord, fmt.Errorf("attribute %q: %w", attrKey, err))
	}
	if credential.Ciphertext, err = base64.StdEncoding.DecodeString(contents); err != nil {
		return nil, apperrors.WithCause(errMalformedRecord, fmt.Errorf("attribute %q: %w", attrContents, err))
	}

	return &credential, nil
}

// stringAttr reads a string attribute, failing if it is missing or of another type.
func stringAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", apperrors.WithCause(errMalformedRecord, fmt.Errorf("attribute %q missing or not a string", name))
	}
	return v.Value, nil
}

// sortCredentials orders records by name, then version.
func sortCredentials(credentials []*credentialDomain.Credential) {
	sort.Slice(credentials, func(i, j int) bool {
		if credentials[i].Name != credentials[j].Name {
			return credentials[i].Name < credentials[j].Name
		}
		return credentials[i].Version < credentials[j].Version
	})
}
