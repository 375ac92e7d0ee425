package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/happydash/internal/binding"
	"github.com/KaramelBytes/happydash/internal/controls"
)

const writeWait = 5 * time.Second

func deadline() time.Time { return time.Now().Add(writeWait) }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message types sent to the client.
const (
	MsgInit   = "init"
	MsgUpdate = "update"
	MsgError  = "error"
)

// Message is one server-to-client frame. Updates holds only the views that
// were recomputed.
type Message struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	State   *controls.State  `json:"state,omitempty"`
	Updates []binding.Update `json:"updates"`
	Error   string           `json:"error,omitempty"`
}

// Session is one connected page with its own control state.
type Session struct {
	ID         string
	conn       *websocket.Conn
	dispatcher *binding.Dispatcher
	log        logrus.FieldLogger
}

func (s *Server) websocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	id := uuid.NewString()
	log := s.log.WithField("session", id)
	sess := &Session{
		ID:         id,
		conn:       ws,
		dispatcher: binding.NewDispatcher(s.table, s.bindings, s.defaults, log),
		log:        log,
	}
	s.hub.Add(sess)
	log.Info("session opened")
	sess.run()
	s.hub.Remove(sess)
	log.Info("session closed")
}

// run sends every view once, then answers each patch with the views it
// invalidated until the client goes away.
func (sess *Session) run() {
	if err := sess.send(MsgInit, sess.dispatcher.Init(), ""); err != nil {
		return
	}
	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		p, err := decodePatch(payload)
		if err != nil {
			sess.log.WithError(err).Debug("bad patch")
			if err := sess.send(MsgError, nil, err.Error()); err != nil {
				return
			}
			continue
		}
		if err := sess.send(MsgUpdate, sess.dispatcher.Apply(p), ""); err != nil {
			return
		}
	}
}

func (sess *Session) send(typ string, updates []binding.Update, errMsg string) error {
	st := sess.dispatcher.State()
	if updates == nil {
		updates = []binding.Update{}
	}
	_ = sess.conn.SetWriteDeadline(deadline())
	return sess.conn.WriteJSON(Message{
		Type:    typ,
		Session: sess.ID,
		State:   &st,
		Updates: updates,
		Error:   errMsg,
	})
}

// decodePatch reads a JSON object keyed by control field. Values may be
// strings or numbers; names are normalized like query parameters.
func decodePatch(payload []byte) (controls.Patch, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return controls.Patch{}, err
	}
	return controls.ParsePatch(func(f controls.Field) (string, bool) {
		v, ok := raw[string(f)]
		if !ok || v == nil {
			return "", false
		}
		switch t := v.(type) {
		case string:
			return t, true
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		default:
			b, _ := json.Marshal(t)
			return string(b), true
		}
	})
}
