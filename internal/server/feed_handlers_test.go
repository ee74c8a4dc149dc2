package server

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketResponse struct {
	Ticket    string `json:"ticket"`
	ExpiresIn int    `json:"expires_in"`
}

func TestIssueWSTicket(t *testing.T) {
	env := newTestEnv(t, "")
	user := env.user(t, "johndoe")

	resp := env.do(t, http.MethodPost, "/api/ws/ticket", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/ws/ticket", nil, env.token(t, "johndoe"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ticket := decode[ticketResponse](t, resp)
	require.NotEmpty(t, ticket.Ticket)
	assert.Equal(t, int(wsTicketTTL.Seconds()), ticket.ExpiresIn)

	stored, err := env.mr.Get(wsTicketKey(ticket.Ticket))
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), stored)
	assert.Equal(t, wsTicketTTL, env.mr.TTL(wsTicketKey(ticket.Ticket)))
}

func TestFeed_TicketIsSingleUse(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/ws/ticket", nil, env.token(t, "johndoe"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ticket := decode[ticketResponse](t, resp).Ticket

	// Not a websocket handshake, but the ticket is accepted and spent.
	resp = env.do(t, http.MethodGet, "/api/ws/feed?ticket="+ticket, nil, "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	assert.False(t, env.mr.Exists(wsTicketKey(ticket)))

	resp = env.do(t, http.MethodGet, "/api/ws/feed?ticket="+ticket, nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/ws/feed?ticket=made-up", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeed_HeaderAuth(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/ws/feed", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/ws/feed", nil, env.token(t, "johndoe"))
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestFeed_FeatureOff(t *testing.T) {
	env := newTestEnv(t, "live_feed=off")

	resp := env.do(t, http.MethodGet, "/api/ws/feed", nil, env.token(t, "johndoe"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
