// Package sqlfake драйвер database/sql для тестов репозиториев
// Ответы задаются функцией по тексту запроса, выполненные запросы записываются
package sqlfake

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/lib/pq"
)

// CodeInFailedTransaction ошибка PostgreSQL для запросов в прерванной транзакции
const CodeInFailedTransaction pq.ErrorCode = "25P02"

// ErrPrepareUnsupported драйвер выполняет запросы только напрямую
var ErrPrepareUnsupported = errors.New("sqlfake: prepared statements are not supported")

// Reply ответ на запрос
type Reply struct {
	Columns []string
	Rows    [][]driver.Value
	Err     error
}

// Responder выбирает ответ по тексту запроса и аргументам
type Responder func(query string, args []driver.NamedValue) Reply

// Server общее состояние всех соединений
type Server struct {
	mu        sync.Mutex
	responder Responder
	queries   []string
	aborted   bool

	// Transactional ведет себя как транзакция PostgreSQL: после первой ошибки
	// все следующие запросы получают 25P02
	Transactional bool
}

// New создает сервер с заданными ответами
func New(responder Responder) *Server {
	return &Server{responder: responder}
}

// DB открывает *sql.DB поверх сервера
func (s *Server) DB() *sql.DB {
	db := sql.OpenDB(connector{s: s})
	db.SetMaxOpenConns(1)
	return db
}

// Queries возвращает выполненные запросы по порядку
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Count число выполненных запросов, содержащих substr
func (s *Server) Count(substr string) int {
	n := 0
	for _, q := range s.Queries() {
		if strings.Contains(q, substr) {
			n++
		}
	}
	return n
}

// Aborted возвращает true, если эмулируемая транзакция прервана
func (s *Server) Aborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

func (s *Server) reply(query string, args []driver.NamedValue) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, query)
	if s.aborted {
		return Reply{Err: &pq.Error{Code: CodeInFailedTransaction}}
	}
	r := s.responder(query, args)
	if r.Err != nil && s.Transactional {
		s.aborted = true
	}
	return r
}

type connector struct {
	s *Server
}

func (c connector) Connect(ctx context.Context) (driver.Conn, error) {
	return &conn{s: c.s}, nil
}

func (c connector) Driver() driver.Driver {
	return fakeDriver{s: c.s}
}

type fakeDriver struct {
	s *Server
}

func (d fakeDriver) Open(name string) (driver.Conn, error) {
	return &conn{s: d.s}, nil
}

type conn struct {
	s *Server
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return nil, ErrPrepareUnsupported
}

func (c *conn) Close() error {
	return nil
}

func (c *conn) Begin() (driver.Tx, error) {
	return tx{}, nil
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	r := c.s.reply(query, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &rows{columns: r.Columns, data: r.Rows}, nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	r := c.s.reply(query, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return driver.RowsAffected(len(r.Rows)), nil
}

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type rows struct {
	columns []string
	data    [][]driver.Value
	pos     int
}

func (r *rows) Columns() []string {
	return r.columns
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}
