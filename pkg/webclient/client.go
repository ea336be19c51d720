// Package webclient is a Go client for the voicekit bridge websocket,
// used by headless integrations and smoke tools.
package webclient

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/acetransit/voicekit/pkg/web"
)

const dialTimeout = 10 * time.Second

// Client is a connected bridge client. Events arrive on the handler
// passed to Dial; Send* methods are safe for concurrent use.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the bridge at url (ws://host:port/ws/assistant) and
// delivers every event to onEvent from a single goroutine.
func Dial(url string, onEvent func(web.Event)) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("webclient: dial %s: %w", url, err)
	}

	c := &Client{
		conn: conn,
		done: make(chan struct{}),
	}
	go c.readLoop(onEvent)
	return c, nil
}

func (c *Client) readLoop(onEvent func(web.Event)) {
	defer c.Close()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var evt web.Event
		if err := json.Unmarshal(data, &evt); err != nil {
			continue
		}
		if onEvent != nil {
			onEvent(evt)
		}
	}
}

// SendTranscript submits recognized speech.
func (c *Client) SendTranscript(text string) error {
	return c.send(web.ClientMessage{Type: web.MsgTranscript, Text: text})
}

// SendStep reports a form step change.
func (c *Client) SendStep(step int) error {
	return c.send(web.ClientMessage{Type: web.MsgStep, Step: step})
}

// SendLocation reports a detected pickup location.
func (c *Client) SendLocation(address, city string) error {
	return c.send(web.ClientMessage{Type: web.MsgLocation, Address: address, City: city})
}

// SendPage reports a page change.
func (c *Client) SendPage(path string) error {
	return c.send(web.ClientMessage{Type: web.MsgPage, Path: path})
}

func (c *Client) send(msg web.ClientMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("webclient: encode: %w", err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("webclient: write: %w", err)
	}
	return nil
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
		close(c.done)
	})
	return err
}
