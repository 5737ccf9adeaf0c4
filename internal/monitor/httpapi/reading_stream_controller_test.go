package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/monitor/httpapi"
	"climate-monitor/internal/monitor/usecases"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReadingStreamController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.ReadingStreamController
		server     *httptest.Server
		cancel     context.CancelFunc
		wg         sync.WaitGroup
		wsURL      string
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		var err error
		controller, err = httpapi.NewReadingStreamController(broker, []string{"http://localhost:5173"})
		Expect(err).NotTo(HaveOccurred())

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)
		wsURL = "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/readings"

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		wg.Add(1)
		go controller.Run(ctx, wg.Done)
	})

	AfterEach(func() {
		cancel()
		wg.Wait()
		server.Close()
		broker.Stop()
	})

	dial := func(header http.Header) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { conn.Close() })
		return conn
	}

	publish := func(temperature, humidity float64) {
		evaluation := evaluationAt(temperature, humidity, time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC))
		Expect(broker.Publish(context.Background(), usecases.ReadingsTopic, async.BrokerMessage{
			Event: usecases.EventReadingAccepted,
			Value: evaluation,
		})).To(Succeed())
	}

	It("should stream accepted readings to connected clients", func() {
		conn := dial(nil)
		Eventually(controller.Clients).Should(Equal(1))

		publish(82, 65)

		var frame map[string]any
		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		Expect(conn.ReadJSON(&frame)).To(Succeed())
		Expect(frame).To(HaveKeyWithValue("type", "reading"))
		Expect(frame["data"]).To(HaveKeyWithValue("command", "LED_RED"))
		Expect(frame["data"]).To(HaveKeyWithValue("temperature", 82.0))
	})

	It("should be subscribed as soon as it is built", func() {
		fresh := async.NewLocalBroker()
		DeferCleanup(fresh.Stop)

		_, err := httpapi.NewReadingStreamController(fresh, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(fresh.Publish(context.Background(), usecases.ReadingsTopic, async.BrokerMessage{
			Event: usecases.EventReadingAccepted,
		})).To(Succeed())
	})

	It("should accept an allowed origin", func() {
		dial(http.Header{"Origin": []string{"http://localhost:5173"}})
		Eventually(controller.Clients).Should(Equal(1))
	})

	It("should reject an unknown origin", func() {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": []string{"http://example.com"}})
		Expect(err).To(HaveOccurred())
		Expect(resp).NotTo(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
	})

	It("should forget clients that disconnect", func() {
		conn := dial(nil)
		Eventually(controller.Clients).Should(Equal(1))

		Expect(conn.Close()).To(Succeed())

		Eventually(controller.Clients).Should(Equal(0))
	})

	It("should close client connections on shutdown", func() {
		conn := dial(nil)
		Eventually(controller.Clients).Should(Equal(1))

		controller.Shutdown()

		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		_, _, err := conn.ReadMessage()
		Expect(websocket.IsCloseError(err, websocket.CloseNormalClosure)).To(BeTrue())
		Expect(controller.Clients()).To(Equal(0))
	})
})
