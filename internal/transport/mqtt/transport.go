package mqtt

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
	"github.com/sirupsen/logrus"
)

const (
	qos            = byte(1)
	connectTimeout = 5 * time.Second
	disconnectWait = 250

	subscriberBuffer = 256
)

// Client - часть клиента paho, которой пользуется транспорт
type Client interface {
	IsConnected() bool
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Unsubscribe(topics ...string) paho.Token
}

// Transport доставляет события на устройства офицеров через MQTT брокер.
// Топик "officer:42" публикуется как "officer/42".
// paho хранит один обработчик на топик, поэтому на брокере каждый топик подписан один раз,
// а сообщения раздаются локальным подписчикам.
type Transport struct {
	client Client
	logger *logrus.Logger

	mu     sync.Mutex
	routes map[string]*route
}

func NewTransport(client Client, logger *logrus.Logger) *Transport {
	return &Transport{client: client, logger: logger, routes: make(map[string]*route)}
}

// Connect подключается к брокеру с автоматическим переподключением
func Connect(broker, clientID string, tlsConfig *tls.Config, logger *logrus.Logger) (*Transport, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetTLSConfig(tlsConfig).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", broker, token.Error())
	}
	return NewTransport(client, logger), nil
}

// BrokerTopic переводит топик события в иерархию MQTT
func BrokerTopic(topic string) (string, error) {
	if strings.ContainsAny(topic, "+#/") {
		return "", fmt.Errorf("topic %q contains MQTT reserved characters", topic)
	}
	return strings.ReplaceAll(topic, ":", "/"), nil
}

func (t *Transport) Publish(ctx context.Context, topic string, payload []byte) error {
	brokerTopic, err := BrokerTopic(topic)
	if err != nil {
		return err
	}
	token := t.client.Publish(brokerTopic, qos, false, payload)
	if err := wait(ctx, token); err != nil {
		return fmt.Errorf("failed to publish to MQTT topic %s: %w", brokerTopic, err)
	}
	return nil
}

func (t *Transport) Subscribe(ctx context.Context, topic string) (fanout.Subscription, error) {
	brokerTopic, err := BrokerTopic(topic)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.routes[brokerTopic]
	if !ok {
		r = &route{topic: brokerTopic, logger: t.logger, subs: make(map[*subscription]struct{})}
		token := t.client.Subscribe(brokerTopic, qos, r.handle)
		if err := wait(ctx, token); err != nil {
			return nil, fmt.Errorf("failed to subscribe to MQTT topic %s: %w", brokerTopic, err)
		}
		t.routes[brokerTopic] = r
	}

	sub := &subscription{transport: t, route: r, ch: make(chan []byte, subscriberBuffer)}
	r.add(sub)

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()
	return sub, nil
}

// release отписывает локального подписчика; подписка на брокере снимается с последним
func (t *Transport) release(sub *subscription) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if remaining := sub.route.remove(sub); remaining > 0 {
		return nil
	}
	if t.routes[sub.route.topic] != sub.route {
		return nil
	}
	delete(t.routes, sub.route.topic)

	token := t.client.Unsubscribe(sub.route.topic)
	token.WaitTimeout(connectTimeout)
	return token.Error()
}

// Close отключается от брокера
func (t *Transport) Close() {
	if t.client.IsConnected() {
		t.client.Disconnect(disconnectWait)
	}
}

func wait(ctx context.Context, token paho.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// route - локальные подписчики одного топика брокера
type route struct {
	topic  string
	logger *logrus.Logger
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
}

func (r *route) add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub] = struct{}{}
}

// remove закрывает канал подписчика и возвращает число оставшихся подписчиков
func (r *route) remove(sub *subscription) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub]; ok {
		delete(r.subs, sub)
		close(sub.ch)
	}
	return len(r.subs)
}

func (r *route) handle(_ paho.Client, msg paho.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sub := range r.subs {
		select {
		case sub.ch <- msg.Payload():
		default:
			r.logger.WithField("topic", r.topic).Warn("MQTT subscriber buffer full, message dropped")
		}
	}
}

type subscription struct {
	transport *Transport
	route     *route
	once      sync.Once
	ch        chan []byte
}

func (s *subscription) Messages() <-chan []byte {
	return s.ch
}

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.transport.release(s)
	})
	return err
}
