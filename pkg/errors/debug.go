package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrorDump is the log view of an error: its code, the wrapped chain and
// whatever the storage driver attached.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`

	MongoCodes    []int  `json:"mongo_codes,omitempty"`
	MongoCodeName string `json:"mongo_code_name,omitempty"`
	MongoMessage  string `json:"mongo_message,omitempty"`
	DuplicateKey  bool   `json:"duplicate_key,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGConstraint = pgxErr.ConstraintName
		d.PGTable = pgxErr.TableName
		d.PGColumn = pgxErr.ColumnName
		d.PGDetail = pgxErr.Detail
		d.PGMessage = pgxErr.Message
		return d
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			d.MongoCodes = append(d.MongoCodes, we.Code)
			if d.MongoMessage == "" {
				d.MongoMessage = we.Message
			}
		}
		if wce := writeErr.WriteConcernError; wce != nil {
			d.MongoCodes = append(d.MongoCodes, wce.Code)
			d.MongoCodeName = wce.Name
			if d.MongoMessage == "" {
				d.MongoMessage = wce.Message
			}
		}
		d.DuplicateKey = mongo.IsDuplicateKeyError(err)
		return d
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		d.MongoCodes = []int{int(cmdErr.Code)}
		d.MongoCodeName = cmdErr.Name
		d.MongoMessage = cmdErr.Message
		d.DuplicateKey = mongo.IsDuplicateKeyError(err)
		return d
	}

	return d
}

// HasDriverDetail reports whether a database driver attached anything beyond
// the message chain.
func (d ErrorDump) HasDriverDetail() bool {
	return d.PGCode != "" || len(d.MongoCodes) > 0
}
