// Package db is the Postgres implementation of the record store. Schema
// bootstrap happens on startup. The votes table carries the
// UNIQUE(proposal_id, voter_id) constraint that backs vote uniqueness,
// and every conditional write runs as a single statement or transaction.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PJ-Pooja16/ReliefDAO/internal/models"
	"github.com/PJ-Pooja16/ReliefDAO/internal/store"
)

type Database struct {
	Pool *pgxpool.Pool
}

var _ store.Store = (*Database)(nil)

func New(ctx context.Context, databaseURL string) (*Database, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	db := &Database{Pool: pool}
	if err := db.initSchema(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *Database) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'Donor',
		reputation INT NOT NULL DEFAULT 0,
		activity TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS disasters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		type TEXT NOT NULL DEFAULT '',
		impact TEXT NOT NULL DEFAULT '',
		alert_level INT NOT NULL DEFAULT 0,
		affected INT NOT NULL DEFAULT 0,
		funds_needed BIGINT NOT NULL DEFAULT 0,
		funds_raised BIGINT NOT NULL DEFAULT 0,
		funds_deployed BIGINT NOT NULL DEFAULT 0,
		proposal_ids JSONB NOT NULL DEFAULT '[]',
		proposals_funded INT NOT NULL DEFAULT 0,
		verified_deliveries INT NOT NULL DEFAULT 0,
		date_started TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS proposals (
		id TEXT PRIMARY KEY,
		disaster_id TEXT NOT NULL REFERENCES disasters(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		amount_requested BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		timeline TEXT NOT NULL DEFAULT '',
		votes_yes INT NOT NULL DEFAULT 0,
		votes_no INT NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL REFERENCES users(id),
		description TEXT NOT NULL DEFAULT '',
		beneficiaries INT NOT NULL DEFAULT 0,
		location TEXT NOT NULL DEFAULT '',
		verification_plan JSONB NOT NULL DEFAULT '[]',
		verification_ref TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS votes (
		id TEXT PRIMARY KEY,
		proposal_id TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		voter_id TEXT NOT NULL REFERENCES users(id),
		decision BOOLEAN NOT NULL,
		tx_signature TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(proposal_id, voter_id)
	);

	CREATE TABLE IF NOT EXISTS donations (
		id TEXT PRIMARY KEY,
		disaster_id TEXT NOT NULL REFERENCES disasters(id),
		donor_id TEXT NOT NULL REFERENCES users(id),
		amount BIGINT NOT NULL,
		type TEXT NOT NULL DEFAULT 'One-time',
		status TEXT NOT NULL DEFAULT 'Pending',
		tx_signature TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_proposals_disaster ON proposals(disaster_id);
	CREATE INDEX IF NOT EXISTS idx_proposals_author ON proposals(created_by);
	CREATE INDEX IF NOT EXISTS idx_votes_proposal ON votes(proposal_id);
	CREATE INDEX IF NOT EXISTS idx_donations_disaster ON donations(disaster_id);
	CREATE INDEX IF NOT EXISTS idx_donations_donor ON donations(donor_id);
	`

	_, err := db.Pool.Exec(ctx, schema)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (db *Database) CreateUser(ctx context.Context, u *models.User) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, reputation, activity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Reputation, u.Activity,
	)
	return err
}

func (db *Database) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Reputation, &u.Activity, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *Database) GetUser(ctx context.Context, id string) (*models.User, error) {
	return db.scanUser(db.Pool.QueryRow(ctx,
		"SELECT id, name, email, password_hash, role, reputation, activity, created_at FROM users WHERE id = $1", id))
}

func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.scanUser(db.Pool.QueryRow(ctx,
		"SELECT id, name, email, password_hash, role, reputation, activity, created_at FROM users WHERE email = $1", email))
}

func (db *Database) AdjustReputation(ctx context.Context, userID string, delta int) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE users SET reputation = reputation + $1 WHERE id = $2", delta, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (db *Database) CreateDisaster(ctx context.Context, d *models.Disaster) error {
	proposalIDs, err := json.Marshal(d.Proposals)
	if err != nil {
		return err
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO disasters (id, name, location, status, type, impact, alert_level, affected,
		                        funds_needed, funds_raised, funds_deployed, proposal_ids,
		                        proposals_funded, verified_deliveries, date_started)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		d.ID, d.Name, d.Location, d.Status, d.Type, d.Impact, d.AlertLevel, d.Affected,
		d.FundsNeeded, d.FundsRaised, d.FundsDeployed, proposalIDs,
		d.ProposalsFunded, d.VerifiedDeliveries, d.DateStarted,
	)
	return err
}

func (db *Database) scanDisaster(row pgx.Row) (*models.Disaster, error) {
	var d models.Disaster
	var proposalIDs []byte
	err := row.Scan(&d.ID, &d.Name, &d.Location, &d.Status, &d.Type, &d.Impact,
		&d.AlertLevel, &d.Affected, &d.FundsNeeded, &d.FundsRaised, &d.FundsDeployed,
		&proposalIDs, &d.ProposalsFunded, &d.VerifiedDeliveries, &d.DateStarted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(proposalIDs, &d.Proposals); err != nil {
		d.Proposals = []string{}
	}
	return &d, nil
}

const disasterColumns = `id, name, location, status, type, impact, alert_level, affected,
	funds_needed, funds_raised, funds_deployed, proposal_ids, proposals_funded,
	verified_deliveries, date_started`

func (db *Database) GetDisaster(ctx context.Context, id string) (*models.Disaster, error) {
	return db.scanDisaster(db.Pool.QueryRow(ctx,
		"SELECT "+disasterColumns+" FROM disasters WHERE id = $1", id))
}

func (db *Database) ListDisasters(ctx context.Context) ([]models.Disaster, error) {
	rows, err := db.Pool.Query(ctx,
		"SELECT "+disasterColumns+" FROM disasters ORDER BY date_started DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disasters []models.Disaster
	for rows.Next() {
		d, err := db.scanDisaster(rows)
		if err != nil {
			return nil, err
		}
		disasters = append(disasters, *d)
	}
	return disasters, rows.Err()
}

func (db *Database) AppendDisasterProposal(ctx context.Context, disasterID, proposalID string) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE disasters SET proposal_ids = proposal_ids || to_jsonb($1::text) WHERE id = $2",
		proposalID, disasterID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (db *Database) TransitionDisasterStatus(ctx context.Context, id string, from, to models.DisasterStatus) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE disasters SET status = $1 WHERE id = $2 AND status = $3", to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.conflictOrMissing(ctx, "disasters", id)
	}
	return nil
}

func (db *Database) UpdateDisasterFunding(ctx context.Context, id string, raised, deployed int64, proposalsFunded int) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE disasters SET funds_raised = $1, funds_deployed = $2, proposals_funded = $3 WHERE id = $4",
		raised, deployed, proposalsFunded, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// conflictOrMissing distinguishes "no such record" from "record exists
// but the conditional write lost the race".
func (db *Database) conflictOrMissing(ctx context.Context, table, id string) error {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", table), id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}
	return store.ErrConflict
}

func (db *Database) CreateProposal(ctx context.Context, p *models.Proposal) error {
	plan, err := json.Marshal(p.VerificationPlan)
	if err != nil {
		return err
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO proposals (id, disaster_id, title, category, amount_requested, status,
		                        timeline, votes_yes, votes_no, created_by, description,
		                        beneficiaries, location, verification_plan, verification_ref, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.DisasterID, p.Title, p.Category, p.AmountRequested, p.Status,
		p.Timeline, p.VotesYes, p.VotesNo, p.CreatedBy, p.Description,
		p.Beneficiaries, p.Location, plan, p.VerificationRef, p.CreatedAt,
	)
	return err
}

const proposalColumns = `id, disaster_id, title, category, amount_requested, status, timeline,
	votes_yes, votes_no, created_by, description, beneficiaries, location,
	verification_plan, verification_ref, created_at`

func (db *Database) scanProposal(row pgx.Row) (*models.Proposal, error) {
	var p models.Proposal
	var plan []byte
	err := row.Scan(&p.ID, &p.DisasterID, &p.Title, &p.Category, &p.AmountRequested,
		&p.Status, &p.Timeline, &p.VotesYes, &p.VotesNo, &p.CreatedBy, &p.Description,
		&p.Beneficiaries, &p.Location, &plan, &p.VerificationRef, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plan, &p.VerificationPlan); err != nil {
		p.VerificationPlan = []string{}
	}
	return &p, nil
}

func (db *Database) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	return db.scanProposal(db.Pool.QueryRow(ctx,
		"SELECT "+proposalColumns+" FROM proposals WHERE id = $1", id))
}

func (db *Database) listProposals(ctx context.Context, query string, args ...any) ([]models.Proposal, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		p, err := db.scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *p)
	}
	return proposals, rows.Err()
}

func (db *Database) ListProposalsByDisaster(ctx context.Context, disasterID string) ([]models.Proposal, error) {
	return db.listProposals(ctx,
		"SELECT "+proposalColumns+" FROM proposals WHERE disaster_id = $1 ORDER BY created_at DESC",
		disasterID)
}

func (db *Database) ListProposalsByAuthor(ctx context.Context, userID string) ([]models.Proposal, error) {
	return db.listProposals(ctx,
		"SELECT "+proposalColumns+" FROM proposals WHERE created_by = $1 ORDER BY created_at DESC",
		userID)
}

func (db *Database) TransitionProposalStatus(ctx context.Context, id string, from, to models.ProposalStatus, verificationRef string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE proposals
		 SET status = $1, verification_ref = COALESCE(NULLIF($2, ''), verification_ref)
		 WHERE id = $3 AND status = $4`,
		to, verificationRef, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.conflictOrMissing(ctx, "proposals", id)
	}
	return nil
}

// InsertVote runs the uniqueness check, the vote insert, and the tally
// increment as one transaction. The proposal row is locked for the
// duration so a concurrent CloseVoting cannot interleave.
func (db *Database) InsertVote(ctx context.Context, v *models.Vote) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status models.ProposalStatus
	err = tx.QueryRow(ctx,
		"SELECT status FROM proposals WHERE id = $1 FOR UPDATE", v.ProposalID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	if status != models.ProposalPending {
		return store.ErrConflict
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO votes (id, proposal_id, voter_id, decision, tx_signature, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.ProposalID, v.VoterID, v.Decision, v.TxSignature, v.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrDuplicateVote
	}
	if err != nil {
		return err
	}

	column := "votes_no"
	if v.Decision {
		column = "votes_yes"
	}
	_, err = tx.Exec(ctx,
		fmt.Sprintf("UPDATE proposals SET %s = %s + 1 WHERE id = $1", column, column),
		v.ProposalID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (db *Database) ListVotes(ctx context.Context, proposalID string) ([]models.Vote, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, proposal_id, voter_id, decision, tx_signature, created_at
		 FROM votes WHERE proposal_id = $1 ORDER BY created_at`,
		proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.ProposalID, &v.VoterID, &v.Decision, &v.TxSignature, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (db *Database) CreateDonation(ctx context.Context, d *models.Donation) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO donations (id, disaster_id, donor_id, amount, type, status, tx_signature, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.DisasterID, d.DonorID, d.Amount, d.Type, d.Status, d.TxSignature, d.CreatedAt)
	return err
}

func (db *Database) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	var d models.Donation
	err := db.Pool.QueryRow(ctx,
		`SELECT id, disaster_id, donor_id, amount, type, status, tx_signature, created_at
		 FROM donations WHERE id = $1`, id).
		Scan(&d.ID, &d.DisasterID, &d.DonorID, &d.Amount, &d.Type, &d.Status, &d.TxSignature, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (db *Database) SettleDonation(ctx context.Context, id string, status models.DonationStatus, txSignature string) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE donations SET status = $1, tx_signature = $2 WHERE id = $3 AND status = $4",
		status, txSignature, id, models.DonationPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.conflictOrMissing(ctx, "donations", id)
	}
	return nil
}

func (db *Database) listDonations(ctx context.Context, query string, args ...any) ([]models.Donation, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.DisasterID, &d.DonorID, &d.Amount, &d.Type, &d.Status, &d.TxSignature, &d.CreatedAt); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

func (db *Database) ListDonationsByDisaster(ctx context.Context, disasterID string) ([]models.Donation, error) {
	return db.listDonations(ctx,
		`SELECT id, disaster_id, donor_id, amount, type, status, tx_signature, created_at
		 FROM donations WHERE disaster_id = $1 ORDER BY created_at DESC`, disasterID)
}

func (db *Database) ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	return db.listDonations(ctx,
		`SELECT id, disaster_id, donor_id, amount, type, status, tx_signature, created_at
		 FROM donations WHERE donor_id = $1 ORDER BY created_at DESC`, donorID)
}

func (db *Database) Close() {
	db.Pool.Close()
}
