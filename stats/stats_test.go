package stats_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cohsim/cache"
	"github.com/sarchlab/cohsim/stats"
)

var _ = Describe("Collector", func() {
	var c *stats.Collector

	BeforeEach(func() {
		c = stats.NewCollector(32)
	})

	It("should count outcomes per action", func() {
		c.Record(false, false, false, cache.Load)
		c.Record(true, false, false, cache.Load)
		c.Record(false, true, true, cache.Store)
		c.Record(true, true, false, cache.LoadMiss)

		Expect(c.Action(cache.Load)).To(Equal(stats.Counters{
			Accesses: 2, Hits: 1, Misses: 1,
		}))
		Expect(c.Action(cache.Store)).To(Equal(stats.Counters{
			Accesses: 1, Misses: 1, Writebacks: 1, UpgradeMisses: 1,
		}))
		Expect(c.Action(cache.LoadMiss).Writebacks).To(Equal(uint64(1)))
		Expect(c.Total().Accesses).To(Equal(uint64(4)))
		Expect(c.Local().Accesses).To(Equal(uint64(3)))
	})

	It("should compute the miss rate over local accesses only", func() {
		c.Record(false, false, false, cache.Load)
		c.Record(true, false, false, cache.Load)
		c.Record(false, false, false, cache.StoreMiss)
		c.Record(false, false, false, cache.StoreMiss)

		Expect(c.MissRate()).To(BeNumerically("~", 50.0))
	})

	It("should report a zero miss rate with no accesses", func() {
		Expect(c.MissRate()).To(BeZero())
	})

	It("should convert counts into bus bytes", func() {
		c.Record(false, false, false, cache.Load)
		c.Record(false, true, false, cache.Store)
		c.Record(false, false, true, cache.Store)
		c.Record(true, true, false, cache.LoadMiss)

		Expect(c.BusToCache()).To(Equal(uint64(2 * 32)))
		Expect(c.WrittenWB()).To(Equal(uint64(2 * 32)))
		Expect(c.WrittenWT()).To(Equal(uint64(2 * stats.WordSize)))
	})

	It("should merge collectors", func() {
		other := stats.NewCollector(32)
		c.Record(true, false, false, cache.Load)
		other.Record(false, false, false, cache.Load)

		c.Merge(other)

		Expect(c.Action(cache.Load).Accesses).To(Equal(uint64(2)))
		Expect(other.Action(cache.Load).Accesses).To(Equal(uint64(1)))
	})

	It("should reset", func() {
		c.Record(true, false, false, cache.Load)
		c.Reset()

		Expect(c.Total()).To(Equal(stats.Counters{}))
	})

	It("should collect events straight from a cache", func() {
		config := cache.Config{
			Capacity:      256,
			BlockSize:     32,
			Associativity: 2,
			Protocol:      cache.ProtocolMSI,
		}
		cc, err := cache.New(config, c)
		Expect(err).NotTo(HaveOccurred())

		cc.Access(0x00, cache.Load)
		cc.Access(0x00, cache.Load)
		cc.Access(0x00, cache.Store)

		Expect(c.Local()).To(Equal(stats.Counters{
			Accesses: 3, Hits: 1, Misses: 2, UpgradeMisses: 1,
		}))
	})

	Describe("Report", func() {
		It("should write greppable key value lines", func() {
			c.Record(false, true, false, cache.Load)
			c.Record(true, false, false, cache.Store)

			var buf bytes.Buffer
			Expect(c.Report(&buf)).To(Succeed())

			values := map[string]string{}
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				Expect(line).To(HavePrefix("  "))
				fields := strings.Fields(line)
				Expect(fields).To(HaveLen(2))
				values[fields[0]] = fields[1]
			}

			Expect(values).To(HaveKeyWithValue("miss_rate", "50.00"))
			Expect(values).To(HaveKeyWithValue("B_written_cache_to_bus_wb", "32"))
			Expect(values).To(HaveKeyWithValue("B_written_cache_to_bus_wt", "4"))
			Expect(values).To(HaveKeyWithValue("n_cpu_accesses", "2"))
			Expect(values).To(HaveKeyWithValue("n_store_hits", "1"))
			Expect(values).To(HaveKey("n_ld_miss"))
			Expect(values).To(HaveKey("n_st_miss_hits"))
		})
	})
})
