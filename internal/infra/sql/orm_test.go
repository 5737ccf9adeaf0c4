package sql_test

import (
	"context"
	"path/filepath"
	"time"

	"climate-monitor/internal/infra/sql"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type sample struct {
	ID    uint `gorm:"primaryKey"`
	Name  string
	Value float64
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(orm.AutoMigrate(&sample{})).To(gomega.Succeed())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(orm.Close()).To(gomega.Succeed())
	})

	ginkgo.It("should keep every memory database private", func() {
		other, err := sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		defer other.Close()
		gomega.Expect(other.AutoMigrate(&sample{})).To(gomega.Succeed())

		gomega.Expect(orm.WithContext(ctx).Create(&sample{Name: "a"}).Error()).To(gomega.Succeed())

		var count int64
		gomega.Expect(other.WithContext(ctx).Model(&sample{}).Count(&count).Error()).To(gomega.Succeed())
		gomega.Expect(count).To(gomega.BeZero())
	})

	ginkgo.It("should map missing rows to ErrRecordNotFound", func() {
		var row sample
		err := orm.WithContext(ctx).First(&row, "name = ?", "missing").Error()

		gomega.Expect(err).To(gomega.MatchError(sql.ErrRecordNotFound))
	})

	ginkgo.It("should order and limit queries", func() {
		for i, name := range []string{"a", "b", "c"} {
			err := orm.WithContext(ctx).Create(&sample{Name: name, Value: float64(i)}).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		}

		var rows []sample
		err := orm.WithContext(ctx).Order("value desc").Limit(2).Find(&rows).Error()

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(rows).To(gomega.HaveLen(2))
		gomega.Expect(rows[0].Name).To(gomega.Equal("c"))
	})

	ginkgo.It("should scan aggregates", func() {
		for _, v := range []float64{1, 2, 6} {
			gomega.Expect(orm.WithContext(ctx).Create(&sample{Value: v}).Error()).To(gomega.Succeed())
		}

		var result struct {
			Total float64
			Count int64
		}
		err := orm.WithContext(ctx).
			Model(&sample{}).
			Select("sum(value) as total, count(*) as count").
			Where("value > ?", 1).
			Scan(&result).
			Error()

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(result.Total).To(gomega.Equal(8.0))
		gomega.Expect(result.Count).To(gomega.Equal(int64(2)))
	})

	ginkgo.It("should run queries with a timeout", func() {
		var count int64
		err := orm.WithTimeout(ctx, 2*time.Second).Model(&sample{}).Count(&count).Error()

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(count).To(gomega.BeZero())
	})

	ginkgo.It("should fail queries on an expired context", func() {
		expired, cancel := context.WithCancel(ctx)
		cancel()

		var rows []sample
		err := orm.WithContext(expired).Find(&rows).Error()

		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("Open", func() {
	ginkgo.It("should report a disabled database", func() {
		_, err := sql.Open(sql.DriverNone, "")

		gomega.Expect(err).To(gomega.MatchError(sql.ErrDatabaseDisabled))
	})

	ginkgo.It("should reject unknown drivers", func() {
		_, err := sql.Open("oracle", "")

		gomega.Expect(err).To(gomega.MatchError(sql.ErrUnknownDriver))
	})

	ginkgo.It("should open a sqlite file", func() {
		orm, err := sql.Open(sql.DriverSQLite, filepath.Join(ginkgo.GinkgoT().TempDir(), "readings.db"))

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(orm.AutoMigrate(&sample{})).To(gomega.Succeed())
		gomega.Expect(orm.Close()).To(gomega.Succeed())
	})

	ginkgo.It("should open an in-memory database", func() {
		orm, err := sql.Open(sql.DriverMemory, "")

		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(orm.Close()).To(gomega.Succeed())
	})
})
