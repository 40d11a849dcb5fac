package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"rdapd/internal/rdap/models"
	"rdapd/pkg/platform/tx"
)

// Save writes d and all its nested records in one transaction, replacing any
// registration with the same LDH name. reverse marks arpa zone names.
func (s *PostgresStore) Save(ctx context.Context, d *models.Domain, reverse bool) (int64, error) {
	if d == nil {
		return 0, fmt.Errorf("domain is required")
	}
	var domainID int64
	err := tx.RunInTx(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Exec(ctx, s.db)
		ldhName := strings.ToLower(d.LdhName)

		if _, err := exec.ExecContext(ctx, `DELETE FROM rdap_domain WHERE ldh_name = $1`, ldhName); err != nil {
			return fmt.Errorf("delete previous domain: %w", err)
		}
		err := exec.QueryRowContext(ctx, `
			INSERT INTO rdap_domain (handle, ldh_name, unicode_name, port43, lang, is_reverse)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, d.Handle, ldhName, d.UnicodeName, d.Port43, d.Lang, reverse).Scan(&domainID)
		if err != nil {
			return fmt.Errorf("insert domain: %w", err)
		}

		for _, st := range d.Status {
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO rdap_domain_status (domain_id, status) VALUES ($1, $2)`, domainID, st); err != nil {
				return fmt.Errorf("insert status: %w", err)
			}
		}
		for _, e := range d.Events {
			if _, err := exec.ExecContext(ctx, `
				INSERT INTO rdap_event (domain_id, event_action, event_actor, event_date)
				VALUES ($1, $2, $3, $4)
			`, domainID, e.Action, e.Actor, nullTime(e.Date)); err != nil {
				return fmt.Errorf("insert event: %w", err)
			}
		}
		for _, l := range d.Links {
			if err := insertLink(ctx, exec, "rdap_link", "domain_id", domainID, l); err != nil {
				return err
			}
		}
		for _, v := range d.Variants {
			var variantsID int64
			if err := exec.QueryRowContext(ctx, `
				INSERT INTO rdap_variants (domain_id, relation, idn_table) VALUES ($1, $2, $3) RETURNING id
			`, domainID, pq.Array(v.Relation), v.IDNTable).Scan(&variantsID); err != nil {
				return fmt.Errorf("insert variants: %w", err)
			}
			for _, name := range v.VariantNames {
				if _, err := exec.ExecContext(ctx, `
					INSERT INTO rdap_variant (variants_id, ldh_name, unicode_name) VALUES ($1, $2, $3)
				`, variantsID, name.LdhName, name.UnicodeName); err != nil {
					return fmt.Errorf("insert variant: %w", err)
				}
			}
		}
		for _, p := range d.PublicIDs {
			if _, err := exec.ExecContext(ctx, `
				INSERT INTO rdap_public_id (domain_id, type, identifier) VALUES ($1, $2, $3)
			`, domainID, p.Type, p.Identifier); err != nil {
				return fmt.Errorf("insert public id: %w", err)
			}
		}
		for _, r := range d.Remarks {
			var remarkID int64
			if err := exec.QueryRowContext(ctx, `
				INSERT INTO rdap_remark (domain_id, title, type, description) VALUES ($1, $2, $3, $4) RETURNING id
			`, domainID, r.Title, r.Type, pq.Array(r.Description)).Scan(&remarkID); err != nil {
				return fmt.Errorf("insert remark: %w", err)
			}
			for _, l := range r.Links {
				if err := insertLink(ctx, exec, "rdap_remark_link", "remark_id", remarkID, l); err != nil {
					return err
				}
			}
		}
		if sdns := d.SecureDNS; sdns != nil {
			if err := insertSecureDNS(ctx, exec, domainID, sdns); err != nil {
				return err
			}
		}
		for _, p := range d.CustomProperties.Entries() {
			if _, err := exec.ExecContext(ctx, `
				INSERT INTO rdap_custom_property (domain_id, key, value) VALUES ($1, $2, $3)
			`, domainID, p.Key, p.Value); err != nil {
				return fmt.Errorf("insert custom property: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save domain %s: %w", d.LdhName, err)
	}
	return domainID, nil
}

// insertLink writes l into table under the parent column; both names are
// package constants, never caller input.
func insertLink(ctx context.Context, exec tx.Executor, table, parentColumn string, parentID int64, l models.Link) error {
	_, err := exec.ExecContext(ctx, `
		INSERT INTO `+table+` (`+parentColumn+`, `+linkColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, parentID, l.Value, l.Rel, l.Href, pq.Array(l.HrefLang), l.Title, l.Media, l.Type)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func insertSecureDNS(ctx context.Context, exec tx.Executor, domainID int64, sdns *models.SecureDNS) error {
	var secureID int64
	if err := exec.QueryRowContext(ctx, `
		INSERT INTO rdap_secure_dns (domain_id, zone_signed, delegation_signed, max_sig_life)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, domainID, nullBool(sdns.ZoneSigned), nullBool(sdns.DelegationSigned), nullInt(sdns.MaxSigLife)).Scan(&secureID); err != nil {
		return fmt.Errorf("insert secure dns: %w", err)
	}
	for _, ds := range sdns.DsData {
		if _, err := exec.ExecContext(ctx, `
			INSERT INTO rdap_ds_data (secure_dns_id, key_tag, algorithm, digest, digest_type)
			VALUES ($1, $2, $3, $4, $5)
		`, secureID, nullInt(ds.KeyTag), nullInt(ds.Algorithm), ds.Digest, nullInt(ds.DigestType)); err != nil {
			return fmt.Errorf("insert ds data: %w", err)
		}
	}
	for _, k := range sdns.KeyData {
		if _, err := exec.ExecContext(ctx, `
			INSERT INTO rdap_key_data (secure_dns_id, flags, protocol, public_key, algorithm)
			VALUES ($1, $2, $3, $4, $5)
		`, secureID, nullInt(k.Flags), nullInt(k.Protocol), k.PublicKey, nullInt(k.Algorithm)); err != nil {
			return fmt.Errorf("insert key data: %w", err)
		}
	}
	return nil
}
