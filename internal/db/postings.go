package db

import (
	"context"
	"database/sql"
	"fmt"

	"jobboard/internal/models"
)

type PostingRepo struct {
	db DBTX
}

func NewPostingRepo(db DBTX) *PostingRepo {
	return &PostingRepo{db: db}
}

func (r *PostingRepo) Create(ctx context.Context, p *models.Posting) (*models.Posting, error) {
	var salary sql.NullString
	if p.Salary != nil {
		salary = sql.NullString{String: *p.Salary, Valid: true}
	}
	var publishedBy sql.NullInt64
	if p.PublishedBy != nil {
		publishedBy = sql.NullInt64{Int64: *p.PublishedBy, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO postings(title,company,contact,salary,description,created_at,published_by) VALUES(?,?,?,?,?,?,?)`,
		p.Title, p.Company, p.Contact, salary, p.Description, p.CreatedAt, publishedBy)
	if err != nil {
		return nil, fmt.Errorf("insert posting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert posting: %w", err)
	}
	p.ID = id
	return p, nil
}

// List returns every posting, newest id first.
func (r *PostingRepo) List(ctx context.Context) ([]models.Posting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,title,company,contact,salary,description,created_at,published_by FROM postings ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select postings: %w", err)
	}
	defer rows.Close()

	out := []models.Posting{}
	for rows.Next() {
		var p models.Posting
		var salary sql.NullString
		var publishedBy sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Contact, &salary, &p.Description, &p.CreatedAt, &publishedBy); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		if salary.Valid {
			s := salary.String
			p.Salary = &s
		}
		if publishedBy.Valid {
			id := publishedBy.Int64
			p.PublishedBy = &id
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
