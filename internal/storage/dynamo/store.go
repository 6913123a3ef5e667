// Package dynamo stores everything in one DynamoDB table.
//
// Item layout:
//
//	PK          SK            item
//	LIMIT       <truck type>  capacity limit
//	BLOCKED     <date>        manually blocked day
//	SLOT        <date>#<type> reservation counter for a day and truck type
//	RES#<id>    RES           reservation (GSI1: DAY#<date> / <type>#<slot>)
//	RES#<id>    CONF          conference record
//
// Admission is guarded by the SLOT counter: the reservation Put and a
// conditional ADD on the counter commit together in TransactWriteItems.
// Losing a race on the counter re-runs the transaction on fresh reads.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const (
	attrPK     = "PK"
	attrSK     = "SK"
	attrGSI1PK = "GSI1PK"
	attrGSI1SK = "GSI1SK"
	gsi1       = "GSI1"

	defaultTableName = "recebimento"
)

// API is the subset of the DynamoDB client the store calls.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type Store struct {
	ddb       API
	tableName string
}

func NewStore(ddb API, tableName string) *Store {
	if tableName == "" {
		tableName = defaultTableName
	}
	return &Store{ddb: ddb, tableName: tableName}
}

// EnsureTable creates the table and its index when missing and waits until
// it is active.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.tableName)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table: %w", err)
	}

	str := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
	}
	_, err = s.ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			str(attrPK), str(attrSK), str(attrGSI1PK), str(attrGSI1SK),
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrPK), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(attrSK), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
			IndexName: aws.String(gsi1),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(attrGSI1PK), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String(attrGSI1SK), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return fmt.Errorf("create table: %w", err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(s.ddb)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.tableName)}, 2*time.Minute); err != nil {
		return fmt.Errorf("wait for table: %w", err)
	}
	return nil
}

type txKey struct{}

// txBuffer collects writes until WithTx commits them as one
// TransactWriteItems call. onFail[i] is returned when item i fails its
// condition.
type txBuffer struct {
	items  []types.TransactWriteItem
	onFail []error
}

// maxTxAttempts bounds how often WithTx re-runs fn after losing a race.
const maxTxAttempts = 5

// errSlotMoved means another admission bumped the SLOT counter between our
// read and our commit.
var errSlotMoved = errors.New("dynamo: slot counter changed")

// WithTx buffers the writes made by fn and commits them atomically when fn
// returns nil. Reads inside fn see the table as it was before the
// transaction; conditional checks catch anything that changed meanwhile.
// When a concurrent writer wins, fn runs again on fresh reads; after
// maxTxAttempts the slot is reported as taken.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	for attempt := 1; ; attempt++ {
		buf := &txBuffer{}
		if err := fn(context.WithValue(ctx, txKey{}, buf)); err != nil {
			return err
		}
		err := s.commit(ctx, buf)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt == maxTxAttempts {
			return domain.ErrSlotTaken
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*attempt) * 10 * time.Millisecond):
		}
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, errSlotMoved) {
		return true
	}
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false
	}
	for _, reason := range canceled.CancellationReasons {
		if aws.ToString(reason.Code) == "TransactionConflict" {
			return true
		}
	}
	return false
}

func txFromContext(ctx context.Context) *txBuffer {
	buf, _ := ctx.Value(txKey{}).(*txBuffer)
	return buf
}

// write buffers item when ctx carries a transaction and commits it on its
// own otherwise.
func (s *Store) write(ctx context.Context, item types.TransactWriteItem, onFail error) error {
	if buf := txFromContext(ctx); buf != nil {
		buf.items = append(buf.items, item)
		buf.onFail = append(buf.onFail, onFail)
		return nil
	}
	return s.commit(ctx, &txBuffer{items: []types.TransactWriteItem{item}, onFail: []error{onFail}})
}

func (s *Store) commit(ctx context.Context, buf *txBuffer) error {
	if len(buf.items) == 0 {
		return nil
	}
	_, err := s.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: buf.items})
	if err == nil {
		return nil
	}

	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for i, reason := range canceled.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" && i < len(buf.onFail) && buf.onFail[i] != nil {
				return buf.onFail[i]
			}
		}
	}
	return fmt.Errorf("transact write: %w", err)
}

// queryAll runs in through every page.
func (s *Store) queryAll(ctx context.Context, in *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	in.TableName = aws.String(s.tableName)
	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(s.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func key(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: strAttr(pk),
		attrSK: strAttr(sk),
	}
}

func strAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func numAttr(v int) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprint(v)}
}
