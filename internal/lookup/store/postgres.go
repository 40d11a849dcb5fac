package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"rdapd/internal/lookup/service"
	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/sentinel"
	"rdapd/pkg/platform/tx"
)

// PostgresStore reads registration data from the rdap_* tables. Every list
// is returned in insertion (id) order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed registration store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindDomain(ctx context.Context, q service.DomainQuery) (*models.Domain, error) {
	d := &models.Domain{}
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, handle, ldh_name, unicode_name, port43, lang
		FROM rdap_domain
		WHERE ldh_name = $1 AND is_reverse = $2
	`, strings.ToLower(q.LdhName), q.Reverse).Scan(&d.ID, &d.Handle, &d.LdhName, &d.UnicodeName, &d.Port43, &d.Lang)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find domain: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListStatus(ctx context.Context, domainID int64) ([]string, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT status FROM rdap_domain_status WHERE domain_id = $1 ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query status: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var st string
		if err := rows.Scan(&st); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListEvents(ctx context.Context, domainID int64) ([]models.Event, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT event_action, event_actor, event_date
		FROM rdap_event WHERE domain_id = $1 ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		var (
			e    models.Event
			date sql.NullTime
		)
		if err := rows.Scan(&e.Action, &e.Actor, &date); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if date.Valid {
			t := date.Time.UTC()
			e.Date = &t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const linkColumns = `value, rel, href, hreflang, title, media, type`

func scanLink(rows *sql.Rows, extra ...any) (models.Link, error) {
	var l models.Link
	dest := append(extra, &l.Value, &l.Rel, &l.Href, pq.Array(&l.HrefLang), &l.Title, &l.Media, &l.Type)
	if err := rows.Scan(dest...); err != nil {
		return l, err
	}
	return l, nil
}

func (s *PostgresStore) ListLinks(ctx context.Context, domainID int64) ([]models.Link, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+linkColumns+` FROM rdap_link WHERE domain_id = $1 ORDER BY id`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	out := []models.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListVariants loads the variant groups, then all their names in one query.
func (s *PostgresStore) ListVariants(ctx context.Context, domainID int64) ([]models.Variants, error) {
	exec := tx.Exec(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT id, relation, idn_table FROM rdap_variants WHERE domain_id = $1 ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	out := []models.Variants{}
	var ids []int64
	for rows.Next() {
		var (
			id int64
			v  models.Variants
		)
		if err := rows.Scan(&id, pq.Array(&v.Relation), &v.IDNTable); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan variants: %w", err)
		}
		v.VariantNames = []models.Variant{}
		ids = append(ids, id)
		out = append(out, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	names, err := exec.QueryContext(ctx, `
		SELECT variants_id, ldh_name, unicode_name
		FROM rdap_variant WHERE variants_id = ANY($1) ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query variant names: %w", err)
	}
	defer names.Close()
	for names.Next() {
		var (
			parent int64
			v      models.Variant
		)
		if err := names.Scan(&parent, &v.LdhName, &v.UnicodeName); err != nil {
			return nil, fmt.Errorf("scan variant name: %w", err)
		}
		i := pos[parent]
		out[i].VariantNames = append(out[i].VariantNames, v)
	}
	return out, names.Err()
}

func (s *PostgresStore) ListPublicIDs(ctx context.Context, domainID int64) ([]models.PublicID, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT type, identifier FROM rdap_public_id WHERE domain_id = $1 ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query public ids: %w", err)
	}
	defer rows.Close()

	out := []models.PublicID{}
	for rows.Next() {
		var p models.PublicID
		if err := rows.Scan(&p.Type, &p.Identifier); err != nil {
			return nil, fmt.Errorf("scan public id: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListRemarks loads the remarks, then all their links in one query.
func (s *PostgresStore) ListRemarks(ctx context.Context, domainID int64) ([]models.Remark, error) {
	exec := tx.Exec(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT id, title, type, description FROM rdap_remark WHERE domain_id = $1 ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query remarks: %w", err)
	}
	out := []models.Remark{}
	var ids []int64
	for rows.Next() {
		var (
			id int64
			r  models.Remark
		)
		if err := rows.Scan(&id, &r.Title, &r.Type, pq.Array(&r.Description)); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan remark: %w", err)
		}
		r.Links = []models.Link{}
		ids = append(ids, id)
		out = append(out, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate remarks: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	links, err := exec.QueryContext(ctx,
		`SELECT remark_id, `+linkColumns+` FROM rdap_remark_link WHERE remark_id = ANY($1) ORDER BY id`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query remark links: %w", err)
	}
	defer links.Close()
	for links.Next() {
		var parent int64
		l, err := scanLink(links, &parent)
		if err != nil {
			return nil, fmt.Errorf("scan remark link: %w", err)
		}
		i := pos[parent]
		out[i].Links = append(out[i].Links, l)
	}
	return out, links.Err()
}

func (s *PostgresStore) FindSecureDNS(ctx context.Context, domainID int64) (*models.SecureDNS, error) {
	var (
		sdns       models.SecureDNS
		zone, dlg  sql.NullBool
		maxSigLife sql.NullInt64
	)
	err := tx.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, zone_signed, delegation_signed, max_sig_life
		FROM rdap_secure_dns WHERE domain_id = $1
	`, domainID).Scan(&sdns.ID, &zone, &dlg, &maxSigLife)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find secure dns: %w", err)
	}
	sdns.ZoneSigned = boolOrNil(zone)
	sdns.DelegationSigned = boolOrNil(dlg)
	sdns.MaxSigLife = intOrNil(maxSigLife)
	return &sdns, nil
}

func (s *PostgresStore) ListDsData(ctx context.Context, secureDNSID int64) ([]models.DsData, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT key_tag, algorithm, digest, digest_type
		FROM rdap_ds_data WHERE secure_dns_id = $1 ORDER BY id
	`, secureDNSID)
	if err != nil {
		return nil, fmt.Errorf("query ds data: %w", err)
	}
	defer rows.Close()

	out := []models.DsData{}
	for rows.Next() {
		var (
			d                       models.DsData
			keyTag, alg, digestType sql.NullInt64
		)
		if err := rows.Scan(&keyTag, &alg, &d.Digest, &digestType); err != nil {
			return nil, fmt.Errorf("scan ds data: %w", err)
		}
		d.KeyTag, d.Algorithm, d.DigestType = intOrNil(keyTag), intOrNil(alg), intOrNil(digestType)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListKeyData(ctx context.Context, secureDNSID int64) ([]models.KeyData, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT flags, protocol, public_key, algorithm
		FROM rdap_key_data WHERE secure_dns_id = $1 ORDER BY id
	`, secureDNSID)
	if err != nil {
		return nil, fmt.Errorf("query key data: %w", err)
	}
	defer rows.Close()

	out := []models.KeyData{}
	for rows.Next() {
		var (
			k                 models.KeyData
			flags, proto, alg sql.NullInt64
		)
		if err := rows.Scan(&flags, &proto, &k.PublicKey, &alg); err != nil {
			return nil, fmt.Errorf("scan key data: %w", err)
		}
		k.Flags, k.Protocol, k.Algorithm = intOrNil(flags), intOrNil(proto), intOrNil(alg)
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListCustomProperties(ctx context.Context, domainID int64) ([]models.Property, error) {
	rows, err := tx.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT key, value FROM rdap_custom_property WHERE domain_id = $1 ORDER BY id
	`, domainID)
	if err != nil {
		return nil, fmt.Errorf("query custom properties: %w", err)
	}
	defer rows.Close()

	out := []models.Property{}
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.Key, &p.Value); err != nil {
			return nil, fmt.Errorf("scan custom property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func boolOrNil(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
