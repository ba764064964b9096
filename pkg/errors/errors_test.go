package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeNotImplemented, status: http.StatusNotImplemented, publicMsg: "operation not implemented", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing name_ar")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing name_ar" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "name_ar"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("connection refused")
	wrapped := Wrap(CodeDependency, cause, "list products")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}

	formatted := Newf(CodeNotImplemented, "%s is not implemented", "ListProducts")
	if formatted.Message() != "ListProducts is not implemented" {
		t.Fatalf("unexpected message %q", formatted.Message())
	}
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("local.UpdateProduct: %w", New(CodeNotFound, "product not found"))
	if !IsNotFound(err) {
		t.Fatalf("expected not found through fmt wrapping")
	}
	if IsCode(err, CodeValidation) {
		t.Fatalf("did not expect validation code")
	}
	if IsNotFound(stdErrors.New("plain")) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestDumpIncludesPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "snapshots_pkey", TableName: "snapshots", Message: "duplicate key"}
	err := Wrap(CodeDependency, pgErr, "persist snapshot")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGTable != "snapshots" || d.PGConstraint != "snapshots_pkey" {
		t.Fatalf("unexpected pg fields %+v", d)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}
}

func TestDumpIncludesMongoWriteErrors(t *testing.T) {
	writeErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error collection: soft99.products"}},
	}
	err := Wrap(CodeDependency, fmt.Errorf("create product: %w", writeErr), "create product")

	d := Dump(err)
	if !d.DuplicateKey {
		t.Fatalf("expected duplicate key flag, got %+v", d)
	}
	if len(d.MongoCodes) != 1 || d.MongoCodes[0] != 11000 {
		t.Fatalf("unexpected mongo codes %v", d.MongoCodes)
	}
	if d.MongoMessage == "" || !d.HasDriverDetail() {
		t.Fatalf("expected mongo message, got %+v", d)
	}
	if d.PGCode != "" {
		t.Fatalf("mongo errors carry no pg code")
	}
}

func TestDumpIncludesMongoCommandErrors(t *testing.T) {
	err := fmt.Errorf("ensure indexes: %w", mongo.CommandError{Code: 85, Name: "IndexOptionsConflict", Message: "index already exists"})

	d := Dump(err)
	if len(d.MongoCodes) != 1 || d.MongoCodes[0] != 85 || d.MongoCodeName != "IndexOptionsConflict" {
		t.Fatalf("unexpected mongo fields %+v", d)
	}
	if d.DuplicateKey {
		t.Fatal("index conflict is not a duplicate key")
	}
	if Dump(stdErrors.New("plain")).HasDriverDetail() {
		t.Fatal("plain errors have no driver detail")
	}
}

func TestDumpNil(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" || len(d.Chain) != 0 {
		t.Fatalf("expected empty dump, got %+v", d)
	}
}
