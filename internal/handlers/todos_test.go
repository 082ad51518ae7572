package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, "GET", "/api/health", "", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])
}

func TestCreateTodo(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, "POST", "/api/todos", `{"content":"  buy milk  "}`, "")
	require.Equal(t, 201, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "buy milk", body["content"])
	assert.Equal(t, false, body["status"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateTodoRejectsEmptyContent(t *testing.T) {
	e, _ := newTestServer(t)

	for _, payload := range []string{`{"content":""}`, `{"content":"   "}`, `{}`} {
		rec := doJSON(e, "POST", "/api/todos", payload, "")
		assert.Equal(t, 400, rec.Code, "payload: %s", payload)
	}

	rec := doJSON(e, "GET", "/api/todos", "", "")
	require.Equal(t, 200, rec.Code)
	assert.Empty(t, decodeList(t, rec))
}

func TestListTodosScopedToOwnerNewestFirst(t *testing.T) {
	e, _ := newTestServer(t)

	_, alice := registerAndLogin(t, e, "alice", "alice@x.com", "pw1")
	_, bob := registerAndLogin(t, e, "bob", "bob@x.com", "pw2")

	require.Equal(t, 201, doJSON(e, "POST", "/api/todos", `{"content":"first"}`, alice).Code)
	time.Sleep(2 * time.Millisecond)
	require.Equal(t, 201, doJSON(e, "POST", "/api/todos", `{"content":"second"}`, alice).Code)
	require.Equal(t, 201, doJSON(e, "POST", "/api/todos", `{"content":"bob's"}`, bob).Code)

	rec := doJSON(e, "GET", "/api/todos", "", alice)
	require.Equal(t, 200, rec.Code)

	todos := decodeList(t, rec)
	require.Len(t, todos, 2)
	assert.Equal(t, "second", todos[0]["content"])
	assert.Equal(t, "first", todos[1]["content"])
}

func TestListTodosUnscopedReturnsAll(t *testing.T) {
	e, _ := newTestServer(t)

	_, alice := registerAndLogin(t, e, "alice", "alice@x.com", "pw1")
	require.Equal(t, 201, doJSON(e, "POST", "/api/todos", `{"content":"owned"}`, alice).Code)
	require.Equal(t, 201, doJSON(e, "POST", "/api/todos", `{"content":"anonymous"}`, "").Code)

	rec := doJSON(e, "GET", "/api/todos", "", "")
	require.Equal(t, 200, rec.Code)
	assert.Len(t, decodeList(t, rec), 2)
}

func TestUpdateTodoStatus(t *testing.T) {
	e, _ := newTestServer(t)

	_, token := registerAndLogin(t, e, "alice", "alice@x.com", "pw1")

	rec := doJSON(e, "POST", "/api/todos", `{"content":"task"}`, token)
	require.Equal(t, 201, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = doJSON(e, "PATCH", "/api/todos/"+id, `{"status":true}`, token)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["status"])

	rec = doJSON(e, "GET", "/api/todos", "", token)
	require.Equal(t, 200, rec.Code)
	todos := decodeList(t, rec)
	require.Len(t, todos, 1)
	assert.Equal(t, true, todos[0]["status"])

	rec = doJSON(e, "PATCH", "/api/todos/"+id, `{"status":false}`, token)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, false, decode(t, rec)["status"])
}

func TestUpdateTodoStatusRejectsNonBoolean(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, "POST", "/api/todos", `{"content":"task"}`, "")
	require.Equal(t, 201, rec.Code)
	id := decode(t, rec)["id"].(string)

	for _, payload := range []string{`{"status":"yes"}`, `{"status":1}`, `{"status":null}`, `{}`} {
		rec := doJSON(e, "PATCH", "/api/todos/"+id, payload, "")
		assert.Equal(t, 400, rec.Code, "payload: %s", payload)
	}

	rec = doJSON(e, "GET", "/api/todos", "", "")
	todos := decodeList(t, rec)
	require.Len(t, todos, 1)
	assert.Equal(t, false, todos[0]["status"])
}

func TestUpdateTodoStatusScopedByOwner(t *testing.T) {
	e, _ := newTestServer(t)

	_, alice := registerAndLogin(t, e, "alice", "alice@x.com", "pw1")
	_, bob := registerAndLogin(t, e, "bob", "bob@x.com", "pw2")

	rec := doJSON(e, "POST", "/api/todos", `{"content":"alice's"}`, alice)
	require.Equal(t, 201, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = doJSON(e, "PATCH", "/api/todos/"+id, `{"status":true}`, bob)
	assert.Equal(t, 404, rec.Code)

	rec = doJSON(e, "DELETE", "/api/todos/"+id, "", bob)
	assert.Equal(t, 404, rec.Code)
}

func TestDeleteTodo(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, "DELETE", "/api/todos/no-such-id", "", "")
	assert.Equal(t, 404, rec.Code)

	rec = doJSON(e, "POST", "/api/todos", `{"content":"task"}`, "")
	require.Equal(t, 201, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = doJSON(e, "DELETE", "/api/todos/"+id, "", "")
	require.Equal(t, 200, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["message"])

	rec = doJSON(e, "GET", "/api/todos", "", "")
	assert.Empty(t, decodeList(t, rec))
}

func TestTodoRoutesRejectInvalidBearer(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, "POST", "/api/todos", `{"content":"task"}`, "not-a-token")
	assert.Equal(t, 401, rec.Code)
}
