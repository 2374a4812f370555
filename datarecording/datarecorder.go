package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table with the given name
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes a same-type entry into a table that already exists
	InsertData(tableName string, entry any)

	// ListTables returns a slice containing names of all tables
	ListTables() []string

	// Flush flushes all the buffered entries into the database
	Flush()
}

// New creates a new DataRecorder. If the path is empty, a unique name is
// generated.
func New(path string) DataRecorder {
	w := &sqliteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a new DataRecorder with a given database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := &sqliteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteWriter is the writer that writes data into an SQLite database
type sqliteWriter struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
}

// init establishes a connection to the database.
func (t *sqliteWriter) init() {
	if t.dbName == "" {
		t.dbName = "traffic_recording_" + xid.New().String()
	}

	filename := t.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

// CreateTable creates a table with one column per field of the sample
// entry. Only flat structs of scalar fields can be recorded.
func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	err := checkStructFields(sampleEntry)
	if err != nil {
		panic(err)
	}

	// Quoted so that fields named after SQL keywords stay legal columns.
	names := structs.Names(sampleEntry)
	for i, name := range names {
		names[i] = `"` + name + `"`
	}

	fields := strings.Join(names, ", \n\t")

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	t.mustExecute(createTableSQL)

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		entries:    []any{},
	}
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

func (t *sqliteWriter) ListTables() []string {
	tables := make([]string, 0, len(t.tables))
	for table := range t.tables {
		tables = append(tables, table)
	}

	return tables
}

func (t *sqliteWriter) Flush() {
	if t.entryCount == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for tableName, table := range t.tables {
		t.flushTable(tableName, table)
	}

	t.entryCount = 0
}

func (t *sqliteWriter) flushTable(tableName string, table *table) {
	if len(table.entries) == 0 {
		return
	}

	statement := t.prepareStatement(tableName, table.entries[0])
	defer statement.Close()

	for _, entry := range table.entries {
		_, err := statement.Exec(fieldValues(entry)...)
		if err != nil {
			panic(err)
		}
	}

	table.entries = nil
}

func (t *sqliteWriter) prepareStatement(
	tableName string,
	sampleEntry any,
) *sql.Stmt {
	n := structs.Names(sampleEntry)
	for i := 0; i < len(n); i++ {
		n[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(n, ", ") + ")"

	stmt, err := t.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	return stmt
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func fieldValues(entry any) []any {
	v := []any{}

	value := reflect.ValueOf(entry)
	for i := 0; i < value.NumField(); i++ {
		v = append(v, value.Field(i).Interface())
	}

	return v
}

func checkStructFields(entry any) error {
	types := reflect.TypeOf(entry)

	for i := 0; i < types.NumField(); i++ {
		field := types.Field(i)

		if !isAllowedType(field.Type.Kind()) {
			return errors.New("entry is invalid")
		}
	}

	return nil
}

func isAllowedType(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32,
		reflect.Float64,
		reflect.Complex64,
		reflect.Complex128,
		reflect.String,
		reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
