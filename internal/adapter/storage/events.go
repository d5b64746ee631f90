package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

var _ port.EventsStorage = (*EventsRepository)(nil)

// An EventsRepository is the append-only event log. A write with an
// already-present (pk, sk) overwrites the row, mirroring key-value put
// semantics: same-millisecond duplicates are kept last-write-wins, not
// deduplicated. Expiry is passive; readers filter on the ttl attribute.
type EventsRepository struct {
	sqldb sqldb

	qInsert   string
	qSelectPK string
}

func NewEventsRepository(sqldb sqldb, table string) EventsRepository {
	const columns = "pk, sk, email, created_at, request_id," +
		" event_type, info, ttl"

	return EventsRepository{
		sqldb: sqldb,
		qInsert: fmt.Sprintf(
			`INSERT INTO %s (%s)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (pk, sk) DO UPDATE SET
				email = EXCLUDED.email,
				created_at = EXCLUDED.created_at,
				request_id = EXCLUDED.request_id,
				event_type = EXCLUDED.event_type,
				info = EXCLUDED.info,
				ttl = EXCLUDED.ttl;`, table, columns,
		),
		qSelectPK: fmt.Sprintf(
			`SELECT %s FROM %s WHERE pk = $1 ORDER BY sk;`, columns, table,
		),
	}
}

type eventInfoRow struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
}

func (r EventsRepository) StoreEvent(
	ctx context.Context, rec domain.EventRecord,
) error {
	const op = "EventsRepository.StoreEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	infoB, err := json.Marshal(eventInfoRow{
		ProductID: rec.Info.ProductID,
		Price:     rec.Info.Price,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.sqldb.ExecContext(ctx, r.qInsert,
		rec.PK, rec.SK, rec.Email, rec.CreatedAt, rec.RequestID,
		string(rec.Type), string(infoB), rec.TTL,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EventsByCode returns every stored record under the product's
// partition key, expired ones included; callers own expiry filtering.
func (r EventsRepository) EventsByCode(
	ctx context.Context, productCode string,
) ([]domain.EventRecord, error) {
	const op = "EventsRepository.EventsByCode"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pk := domain.EventPartitionKey(productCode)
	rows, err := r.sqldb.QueryContext(ctx, r.qSelectPK, pk)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var recs []domain.EventRecord
	for rows.Next() {
		rec, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recs, nil
}

func (r EventsRepository) scanEvent(
	row rowScanner,
) (domain.EventRecord, error) {
	var (
		rec       domain.EventRecord
		eventType string
		infoS     string
	)

	err := row.Scan(
		&rec.PK, &rec.SK, &rec.Email, &rec.CreatedAt,
		&rec.RequestID, &eventType, &infoS, &rec.TTL,
	)
	if err != nil {
		return domain.EventRecord{}, err
	}

	rec.Type = domain.EventType(eventType)

	var info eventInfoRow
	if err := json.Unmarshal([]byte(infoS), &info); err != nil {
		return domain.EventRecord{}, err
	}
	rec.Info = domain.EventInfo{ProductID: info.ProductID, Price: info.Price}
	return rec, nil
}
