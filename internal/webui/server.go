package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/planestic/ud-assistant/internal/assistant"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/shirou/gopsutil/v4/process"
)

const (
	APIVersion = "v1.0"

	maxQueryBytes = 16 * 1024
	wsReadTimeout = 10 * time.Minute
	wsWriteWait   = 10 * time.Second
)

// Features advertised by /api/system.
var Features = []string{"web_search", "ranking", "context_packing", "small_talk"}

// Answerer is the part of the assistant the web UI needs.
type Answerer interface {
	Ask(ctx context.Context, query string) assistant.Answer
	Info() assistant.Info
}

type Server struct {
	answerer  Answerer
	models    []string
	startedAt time.Time
	upgrader  websocket.Upgrader
}

// NewServer serves answerer over HTTP. models lists the selectable bot types.
func NewServer(answerer Answerer, models []string) *Server {
	return &Server{
		answerer:  answerer,
		models:    models,
		startedAt: time.Now().UTC(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/system", s.handleSystem)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(defaultIndexHTML))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{
		"ok":         true,
		"status":     "healthy",
		"started_at": s.startedAt.Format(time.RFC3339),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
	}
	if s.answerer != nil {
		info := s.answerer.Info()
		payload["served"] = info.Served
		payload["degraded"] = info.Degraded
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			payload["rss_bytes"] = mem.RSS
		}
		if n, err := proc.NumThreads(); err == nil {
			payload["threads"] = n
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

type systemInfo struct {
	BotType         string   `json:"bot_type"`
	Model           string   `json:"model"`
	SearchEngine    string   `json:"search_engine"`
	APIVersion      string   `json:"api_version"`
	Status          string   `json:"status"`
	Features        []string `json:"features"`
	AvailableModels []string `json:"available_models"`
}

func (s *Server) handleSystem(w http.ResponseWriter, _ *http.Request) {
	info := systemInfo{
		APIVersion:      APIVersion,
		Status:          "active",
		Features:        Features,
		AvailableModels: s.models,
	}
	if s.answerer != nil {
		cur := s.answerer.Info()
		info.BotType = cur.BotType
		info.Model = cur.Model
		info.SearchEngine = cur.Engine
	} else {
		info.Status = "unavailable"
	}
	writeJSON(w, http.StatusOK, info)
}

type chatRequest struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}

// query accepts both "message" and "text" keys.
func (r chatRequest) query() string {
	if q := strings.TrimSpace(r.Message); q != "" {
		return q
	}
	return strings.TrimSpace(r.Text)
}

type source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type chatResponse struct {
	Response  string   `json:"response"`
	RequestID string   `json:"request_id,omitempty"`
	Sources   []source `json:"sources,omitempty"`
	Degraded  bool     `json:"degraded,omitempty"`
}

func toChatResponse(ans assistant.Answer) chatResponse {
	resp := chatResponse{
		Response:  ans.Text,
		RequestID: ans.RequestID,
		Degraded:  ans.Degraded,
	}
	for _, r := range ans.Sources {
		resp.Sources = append(resp.Sources, source{Title: r.Title, URL: r.URL})
	}
	return resp
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if s.answerer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "assistant is not initialized"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Formato JSON inválido"})
		return
	}
	q := req.query()
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "El mensaje no puede estar vacío"})
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(s.answerer.Ask(r.Context(), q)))
}

// handleWebSocket answers each text frame with one JSON frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.answerer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "assistant is not initialized"})
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("[WebUI] WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxQueryBytes)

	logger.Info("[WebUI] WebSocket connection from %s", r.RemoteAddr)

	for {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("[WebUI] WebSocket read error: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		q := frameQuery(message)
		if q == "" {
			continue
		}
		ans := s.answerer.Ask(r.Context(), q)

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(toChatResponse(ans)); err != nil {
			logger.Warn("[WebUI] WebSocket write failed: %v", err)
			return
		}
	}
}

// frameQuery reads a frame as {"message": ...} JSON, or as plain text.
func frameQuery(frame []byte) string {
	var req chatRequest
	if err := json.Unmarshal(frame, &req); err == nil {
		return req.query()
	}
	return strings.TrimSpace(string(frame))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

const defaultIndexHTML = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Asistente UD</title>
  <style>
    body { font-family: "Segoe UI", sans-serif; margin: 0; background: linear-gradient(145deg,#f7fafc,#e9eef7); color: #1f2937; }
    .wrap { max-width: 900px; margin: 0 auto; padding: 20px; }
    .panel { background: #fff; border-radius: 12px; box-shadow: 0 8px 30px rgba(15,23,42,.08); padding: 16px; }
    #log { min-height: 320px; max-height: 60vh; overflow: auto; white-space: pre-wrap; border: 1px solid #d1d5db; border-radius: 8px; padding: 12px; background: #f9fafb; }
    .row { display: flex; gap: 8px; margin-top: 10px; }
    input { flex: 1; padding: 10px; border: 1px solid #cbd5e1; border-radius: 8px; }
    button { padding: 10px 16px; border: 0; border-radius: 8px; background: #8b1c1c; color: #fff; cursor: pointer; }
    button:hover { background: #a32424; }
  </style>
</head>
<body>
  <div class="wrap">
    <div class="panel">
      <h2>Asistente Universidad Distrital</h2>
      <div id="log"></div>
      <div class="row">
        <input id="msg" placeholder="Escribe tu pregunta..." />
        <button id="send">Enviar</button>
      </div>
    </div>
  </div>
  <script>
    const log = document.getElementById('log');
    const msg = document.getElementById('msg');
    const send = document.getElementById('send');
    const append = (role, text) => { log.textContent += role + ': ' + text + '\n\n'; log.scrollTop = log.scrollHeight; };
    async function sendMessage() {
      const text = msg.value.trim();
      if (!text) return;
      append('Tú', text);
      msg.value = '';
      const resp = await fetch('/api/chat', { method:'POST', headers:{'Content-Type':'application/json'}, body: JSON.stringify({ message: text })});
      const data = await resp.json();
      append('UD', data.response || data.error || '(vacío)');
    }
    send.addEventListener('click', sendMessage);
    msg.addEventListener('keydown', (e) => { if (e.key === 'Enter') sendMessage(); });
  </script>
</body>
</html>`
