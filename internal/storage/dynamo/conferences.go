package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

// CreateConference puts the CONF item next to its reservation. A second
// record for the same reservation fails with domain.ErrAlreadyReceived.
func (s *Store) CreateConference(ctx context.Context, rec domain.ConferenceRecord) error {
	av, err := attributevalue.MarshalMap(conferenceItem{
		PK:              reservationPK(rec.ReservationID),
		SK:              skConf,
		ID:              rec.ID,
		ReservationID:   rec.ReservationID,
		AccessCode:      rec.AccessCode,
		PalletsReceived: rec.PalletsReceived,
		VolumesReceived: rec.VolumesReceived,
		Observations:    rec.Observations,
		RecorderName:    rec.RecorderName,
		RecordedAt:      formatTime(rec.RecordedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal conference: %w", err)
	}

	return s.write(ctx, types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(s.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": attrPK},
	}}, domain.ErrAlreadyReceived)
}

func (s *Store) MarkReceived(ctx context.Context, id string, at time.Time, handlingTime string) error {
	expr := "SET #status = :received, #conference_at = :at"
	names := map[string]string{
		"#pk":            attrPK,
		"#status":        "status",
		"#conference_at": "conference_at",
	}
	values := map[string]types.AttributeValue{
		":received": strAttr(string(domain.ReservationStatusReceived)),
		":pending":  strAttr(string(domain.ReservationStatusPending)),
		":at":       strAttr(formatTime(at)),
	}
	if handlingTime != "" {
		expr += ", #handling = :handling"
		names["#handling"] = "handling_time"
		values[":handling"] = strAttr(handlingTime)
	}

	return s.write(ctx, types.TransactWriteItem{Update: &types.Update{
		TableName:                 aws.String(s.tableName),
		Key:                       key(reservationPK(id), skRes),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(#pk) AND #status = :pending"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}}, domain.ErrReservationNotFound)
}

func (s *Store) SetArrival(ctx context.Context, id string, at time.Time) error {
	return s.write(ctx, types.TransactWriteItem{Update: &types.Update{
		TableName:           aws.String(s.tableName),
		Key:                 key(reservationPK(id), skRes),
		UpdateExpression:    aws.String("SET #arrival = :at"),
		ConditionExpression: aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk":      attrPK,
			"#arrival": "arrival_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":at": strAttr(formatTime(at)),
		},
	}}, domain.ErrReservationNotFound)
}
