package usecases_test

import (
	"context"
	"errors"
	"time"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/usecases"
	mockasync "climate-monitor/test/unit/doubles/infra/async"
	mockusecases "climate-monitor/test/unit/doubles/monitor/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
)

func hotEvaluation() domain.Evaluation {
	reading, err := domain.NewReadingBuilder().WithTemperature(82).WithHumidity(65).Build()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return domain.Evaluate(reading, domain.Thresholds{TempHot: 78, TempCold: 60, HumidityHigh: 60, HumidityLow: 30})
}

func publishReading(ctx context.Context, broker async.InternalBroker, evaluation domain.Evaluation) {
	gomega.Expect(broker.Publish(ctx, usecases.ReadingsTopic, async.BrokerMessage{
		Event: usecases.EventReadingAccepted,
		Value: evaluation,
	})).To(gomega.Succeed())
}

func runWorker(ctx context.Context, worker async.Worker) (context.CancelFunc, chan struct{}) {
	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go worker.Run(workerCtx, func() { close(done) })
	return cancel, done
}

var _ = ginkgo.Describe("Workers", func() {
	var (
		ctrl       *gomock.Controller
		broker     *async.LocalBroker
		repository *mockusecases.MockReadingRepository
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		broker = async.NewLocalBroker()
		repository = mockusecases.NewMockReadingRepository(ctrl)
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		broker.Stop()
	})

	ginkgo.Context("HistoryWorker", func() {
		newHistoryWorker := func() *usecases.HistoryWorker {
			worker, err := usecases.NewHistoryWorker(broker, repository)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			return worker
		}

		ginkgo.It("should save every accepted evaluation", func() {
			evaluation := hotEvaluation()
			saved := make(chan domain.Evaluation, 1)
			repository.EXPECT().Save(gomock.Any(), evaluation).DoAndReturn(
				func(_ context.Context, e domain.Evaluation) error {
					saved <- e
					return nil
				})

			cancel, done := runWorker(ctx, newHistoryWorker())
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			publishReading(ctx, broker, evaluation)

			gomega.Eventually(saved).Should(gomega.Receive(gomega.Equal(evaluation)))
		})

		ginkgo.It("should save readings published before it starts running", func() {
			evaluation := hotEvaluation()
			saved := make(chan domain.Evaluation, 1)
			repository.EXPECT().Save(gomock.Any(), evaluation).DoAndReturn(
				func(_ context.Context, e domain.Evaluation) error {
					saved <- e
					return nil
				})

			worker := newHistoryWorker()
			publishReading(ctx, broker, evaluation)

			cancel, done := runWorker(ctx, worker)
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			gomega.Eventually(saved).Should(gomega.Receive(gomega.Equal(evaluation)))
		})

		ginkgo.It("should fail to build when the broker refuses the subscription", func() {
			failing := mockasync.NewMockInternalBroker(ctrl)
			failing.EXPECT().Subscribe(usecases.ReadingsTopic).Return(async.Subscription{}, errors.New("broker stopped"))

			_, err := usecases.NewHistoryWorker(failing, repository)

			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("broker stopped")))
		})

		ginkgo.It("should keep running after a failed save", func() {
			first, second := hotEvaluation(), hotEvaluation()
			saved := make(chan struct{}, 2)
			repository.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, domain.Evaluation) error {
					saved <- struct{}{}
					return errors.New("database is locked")
				}).Times(2)

			cancel, done := runWorker(ctx, newHistoryWorker())
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			publishReading(ctx, broker, first)
			gomega.Eventually(saved).Should(gomega.Receive())
			publishReading(ctx, broker, second)
			gomega.Eventually(saved).Should(gomega.Receive())
		})

		ginkgo.It("should ignore other events", func() {
			cancel, done := runWorker(ctx, newHistoryWorker())
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			gomega.Expect(broker.Publish(ctx, usecases.ReadingsTopic, async.BrokerMessage{Event: "other", Value: 1})).To(gomega.Succeed())
			gomega.Consistently(func() bool { return ctrl.Satisfied() }).Should(gomega.BeTrue())
		})

		ginkgo.It("should stop when the broker stops", func() {
			_, done := runWorker(ctx, newHistoryWorker())

			gomega.Expect(broker.Publish(ctx, usecases.ReadingsTopic, async.BrokerMessage{Event: "other"})).To(gomega.Succeed())
			broker.Stop()

			gomega.Eventually(done).Should(gomega.BeClosed())
		})
	})

	ginkgo.Context("PublisherWorker", func() {
		ginkgo.It("should forward accepted evaluations", func() {
			publisher := mockusecases.NewMockEvaluationPublisher(ctrl)
			evaluation := hotEvaluation()
			published := make(chan domain.Evaluation, 1)
			publisher.EXPECT().Publish(gomock.Any(), evaluation).DoAndReturn(
				func(_ context.Context, e domain.Evaluation) error {
					published <- e
					return nil
				})

			worker, err := usecases.NewPublisherWorker(broker, publisher)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			cancel, done := runWorker(ctx, worker)
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			publishReading(ctx, broker, evaluation)

			gomega.Eventually(published).Should(gomega.Receive(gomega.Equal(evaluation)))
		})
	})

	ginkgo.Context("MetricsWorker", func() {
		ginkgo.It("should record gauges and counters for each evaluation", func() {
			reader := sdkmetric.NewManualReader()
			provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
			otel.SetMeterProvider(provider)

			worker, err := usecases.NewMetricsWorker(broker)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			cancel, done := runWorker(ctx, worker)
			defer func() {
				cancel()
				gomega.Eventually(done).Should(gomega.BeClosed())
			}()

			publishReading(ctx, broker, hotEvaluation())

			gomega.Eventually(func() []string {
				var rm metricdata.ResourceMetrics
				gomega.Expect(reader.Collect(ctx, &rm)).To(gomega.Succeed())
				var names []string
				for _, scope := range rm.ScopeMetrics {
					for _, m := range scope.Metrics {
						names = append(names, m.Name)
					}
				}
				return names
			}).Should(gomega.ContainElements(
				"climate_monitor.temperature",
				"climate_monitor.humidity",
				"climate_monitor.readings.total",
			))
		})
	})

	ginkgo.Context("ReportWorker", func() {
		var (
			ticker *time.Ticker
			now    time.Time
			clock  func() time.Time
		)

		ginkgo.BeforeEach(func() {
			ticker = time.NewTicker(time.Hour)
			now = time.Date(2024, 3, 9, 14, 2, 0, 0, time.UTC)
			clock = func() time.Time { return now }
		})

		ginkgo.AfterEach(func() {
			ticker.Stop()
		})

		ginkgo.It("should reject invalid schedules", func() {
			_, err := usecases.NewReportWorker(ticker, "every hour", repository)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should summarize readings since the previous report once the schedule is due", func() {
			worker, err := usecases.NewReportWorker(ticker, "*/5 * * * *", repository)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			worker.WithClock(clock)
			start := now

			gomega.Expect(worker.Tick(ctx)).To(gomega.BeFalse())

			now = now.Add(2 * time.Minute)
			gomega.Expect(worker.Tick(ctx)).To(gomega.BeFalse())

			now = now.Add(time.Minute)
			repository.EXPECT().Summarize(gomock.Any(), start).Return(domain.Summary{
				Count: 3, TempMin: 70, TempMax: 82, TempAvg: 75,
			}, nil)
			gomega.Expect(worker.Tick(ctx)).To(gomega.BeTrue())

			reported := now
			now = now.Add(5 * time.Minute)
			repository.EXPECT().Summarize(gomock.Any(), reported).Return(domain.Summary{}, nil)
			gomega.Expect(worker.Tick(ctx)).To(gomega.BeTrue())
		})

		ginkgo.It("should not report when the repository fails", func() {
			worker, err := usecases.NewReportWorker(ticker, "* * * * *", repository)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			worker.WithClock(clock)

			worker.Tick(ctx)
			now = now.Add(time.Minute)
			repository.EXPECT().Summarize(gomock.Any(), gomock.Any()).Return(domain.Summary{}, errors.New("closed"))

			gomega.Expect(worker.Tick(ctx)).To(gomega.BeFalse())
		})

		ginkgo.It("should stop when cancelled", func() {
			worker, err := usecases.NewReportWorker(ticker, "0 * * * *", repository)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			cancel, done := runWorker(ctx, worker)
			cancel()

			gomega.Eventually(done).Should(gomega.BeClosed())
		})
	})
})

var _ = ginkgo.Describe("ReadingService", func() {
	var (
		ctrl       *gomock.Controller
		repository *mockusecases.MockReadingRepository
		service    *usecases.SimpleReadingService
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		repository = mockusecases.NewMockReadingRepository(ctrl)
		service = usecases.NewReadingService(repository)
		ctx = context.Background()
	})

	ginkgo.DescribeTable("Recent limits",
		func(requested, expected int) {
			repository.EXPECT().FindRecent(gomock.Any(), expected).Return(nil, nil)

			_, err := service.Recent(ctx, requested)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		},
		ginkgo.Entry("zero selects the default", 0, usecases.DefaultRecentLimit),
		ginkgo.Entry("negative selects the default", -3, usecases.DefaultRecentLimit),
		ginkgo.Entry("in range is kept", 7, 7),
		ginkgo.Entry("too large is clamped", 10_000, usecases.MaxRecentLimit),
	)

	ginkgo.It("should keep ErrReadingNotFound visible", func() {
		repository.EXPECT().FindLatest(gomock.Any()).Return(domain.Evaluation{}, usecases.ErrReadingNotFound)

		_, err := service.Latest(ctx)

		gomega.Expect(err).To(gomega.MatchError(usecases.ErrReadingNotFound))
	})
})
