package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cohsim/cache"
)

var _ = Describe("VI protocol", func() {
	var (
		sink   *recordingSink
		config cache.Config
		c      *cache.Cache
	)

	BeforeEach(func() {
		sink = &recordingSink{}
		config = smallConfig(cache.ProtocolVI)
		c = mustNew(config, sink)
	})

	It("should fill on a local miss and hit afterwards", func() {
		Expect(c.Access(0x00, cache.Load)).To(BeFalse())
		Expect(c.Access(0x00, cache.Store)).To(BeTrue())

		line, _, _ := c.Lookup(0x00)
		Expect(line.State).To(Equal(cache.Valid))
		Expect(line.Dirty).To(BeTrue())
	})

	It("should invalidate a dirty line on a remote store miss and write back once", func() {
		c.Access(0x00, cache.Store)

		Expect(c.Access(0x00, cache.StoreMiss)).To(BeFalse())
		Expect(sink.last()).To(Equal(statsEvent{
			Writeback: true,
			Action:    cache.StoreMiss,
		}))
		Expect(c.LineAt(0, 0).State).To(Equal(cache.Invalid))
		Expect(c.LineAt(0, 0).Dirty).To(BeFalse())

		Expect(c.Access(0x00, cache.StoreMiss)).To(BeFalse())
		Expect(sink.last().Writeback).To(BeFalse())
	})

	It("should invalidate a clean line on a remote load miss", func() {
		c.Access(0x00, cache.Load)

		Expect(c.Access(0x00, cache.LoadMiss)).To(BeFalse())
		Expect(sink.last().Writeback).To(BeFalse())

		_, _, found := c.Lookup(0x00)
		Expect(found).To(BeFalse())
	})

	It("should ignore remote notifications for absent blocks", func() {
		c.Access(0x000, cache.Store)

		Expect(c.Access(0x080, cache.StoreMiss)).To(BeFalse())
		Expect(sink.last().Writeback).To(BeFalse())

		line, _, found := c.Lookup(0x000)
		Expect(found).To(BeTrue())
		Expect(line.Dirty).To(BeTrue())
		Expect(c.LineAt(0, 1)).To(Equal(cache.Line{}))
		Expect(c.Pointer(0)).To(Equal(1))
	})

	It("should refill a block after it was invalidated", func() {
		c.Access(0x00, cache.Load)
		c.Access(0x00, cache.StoreMiss)

		Expect(c.Access(0x00, cache.Load)).To(BeFalse())
		Expect(c.Access(0x00, cache.Load)).To(BeTrue())
	})

	Describe("replacement pointer on invalidation", func() {
		fillSet := func(c *cache.Cache) {
			c.Access(0x000, cache.Load)
			c.Access(0x080, cache.Load)
		}

		It("should leave the pointer alone by default", func() {
			fillSet(c)
			Expect(c.Pointer(0)).To(Equal(0))

			c.Access(0x080, cache.StoreMiss)
			Expect(c.Pointer(0)).To(Equal(0))
		})

		It("should point at the invalidated way when enabled", func() {
			config.LRUOnInvalidate = true
			c = mustNew(config, sink)
			fillSet(c)

			c.Access(0x080, cache.StoreMiss)
			Expect(c.Pointer(0)).To(Equal(1))

			c.Access(0x100, cache.Load)
			_, way, found := c.Lookup(0x100)
			Expect(found).To(BeTrue())
			Expect(way).To(Equal(1))

			_, _, found = c.Lookup(0x000)
			Expect(found).To(BeTrue())
		})

		It("should point at a way invalidated by a remote load miss", func() {
			config.LRUOnInvalidate = true
			c = mustNew(config, sink)
			fillSet(c)
			Expect(c.Pointer(0)).To(Equal(0))

			c.Access(0x080, cache.LoadMiss)
			Expect(c.LineAt(0, 1).State).To(Equal(cache.Invalid))
			Expect(c.Pointer(0)).To(Equal(1))
		})
	})
})
