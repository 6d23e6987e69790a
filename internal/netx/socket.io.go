package netx

import (
	"net/http"
	"sync"

	"github.com/zishang520/socket.io/servers/engine/v3"
	"github.com/zishang520/socket.io/servers/socket/v3"
	"github.com/zishang520/socket.io/v3/pkg/types"
)

// Socket represents a wrapper around the Socket.IO server
type Socket struct {
	sock       *socket.Server
	Namespaces map[string]*Namespace
}

// Initialize configures and creates the Socket.IO server
func (self *Socket) Initialize() {
	opts := socket.DefaultServerOptions()
	opts.SetPath("/socket.io")
	opts.SetTransports(types.NewSet(
		engine.Polling,   // HTTP long-polling transport
		engine.WebSocket, // WebSocket transport for real-time communication
	))
	opts.SetMaxHttpBufferSize(1e6) // 1MB, clients only send small requests
	self.sock = socket.NewServer(nil, opts)
	self.Namespaces = make(map[string]*Namespace)
}

// AddNamespace creates a new Socket.IO namespace and adds it to the server
func (self *Socket) AddNamespace(name string) {
	namespace := &Namespace{namespace: self.sock.Of(name, nil)}
	namespace.Initialize()
	self.Namespaces[name] = namespace
}

// GetNamespace returns the desired namespace, or nil if it was never added
func (self *Socket) GetNamespace(name string) *Namespace {
	return self.Namespaces[name]
}

// Handler returns an HTTP handler for the Socket.IO server
func (self *Socket) Handler() http.Handler {
	return self.sock.ServeHandler(nil)
}

// Namespace represents a Socket.IO namespace with custom event handling.
// It also tracks connected clients so the server can push to all of them.
type Namespace struct {
	namespace socket.Namespace
	events    map[string]func(client *socket.Socket, data ...any)

	mu      sync.RWMutex
	clients map[string]*socket.Socket
}

// Initialize sets up the namespace with default event handlers
func (self *Namespace) Initialize() {
	self.events = map[string]func(*socket.Socket, ...any){
		"disconnect": func(client *socket.Socket, reason ...any) {},
	}
	self.clients = make(map[string]*socket.Socket)
}

// AddEvent registers a custom event handler for the namespace
func (self *Namespace) AddEvent(event string, f func(*socket.Socket, ...any)) {
	self.events[event] = f
}

// RegisterEvents activates all the event handlers for new client connections.
// The optional onConnect hook runs once per client after it is tracked.
func (self *Namespace) RegisterEvents(onConnect func(client *socket.Socket)) {
	self.namespace.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)

		self.mu.Lock()
		self.clients[string(client.Id())] = client
		self.mu.Unlock()

		for event, f := range self.events {
			if event == "disconnect" {
				continue
			}
			client.On(event, func(data ...any) { f(client, data...) })
		}
		client.On("disconnect", func(reason ...any) {
			self.mu.Lock()
			delete(self.clients, string(client.Id()))
			self.mu.Unlock()
			self.events["disconnect"](client, reason...)
		})

		if onConnect != nil {
			onConnect(client)
		}
	})
}

// Broadcast emits event to every connected client of the namespace
func (self *Namespace) Broadcast(event string, data ...any) {
	self.mu.RLock()
	clients := make([]*socket.Socket, 0, len(self.clients))
	for _, c := range self.clients {
		clients = append(clients, c)
	}
	self.mu.RUnlock()

	for _, c := range clients {
		c.Emit(event, data...)
	}
}

// ClientCount returns the number of connected clients
func (self *Namespace) ClientCount() int {
	self.mu.RLock()
	defer self.mu.RUnlock()
	return len(self.clients)
}

// AddMiddleware adds a middleware to the namespace
func (self *Namespace) AddMiddleware(f func(client *socket.Socket, next func(*socket.ExtendedError))) {
	self.namespace.Use(f)
}

var (
	globalServer *Socket
	globalOnce   sync.Once
)

// SetupGlobalServer creates the process-wide Socket.IO server with the
// given namespaces. Later calls return the existing server.
func SetupGlobalServer(namespaces ...string) *Socket {
	globalOnce.Do(func() {
		globalServer = new(Socket)
		globalServer.Initialize()
		for _, name := range namespaces {
			globalServer.AddNamespace(name)
		}
	})
	return globalServer
}

// GetGlobalServer returns the server created by SetupGlobalServer
func GetGlobalServer() *Socket {
	return globalServer
}

// GetHandler returns the HTTP handler of the global server
func GetHandler() http.Handler {
	return globalServer.Handler()
}
