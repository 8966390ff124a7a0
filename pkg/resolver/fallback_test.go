// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resolver_test

import (
	"errors"
	"strings"

	"github.com/gardener/doclink/pkg/reference"
	"github.com/gardener/doclink/pkg/resolver"
	"github.com/gardener/doclink/pkg/resolver/resolverfakes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fallback resolution", func() {
	var (
		r        *resolver.Resolver
		fallback *resolverfakes.FakeFallback
	)

	BeforeEach(func() {
		r = resolver.New(buildHierarchy(myKitGraph()))
		fallback = &resolverfakes.FakeFallback{}
		r.AddFallback(fallback)
	})

	It("consults the fallback on a hierarchy miss", func() {
		external := reference.NewResolved("com.example.remote", reference.Intern(reference.Article, "/remote/Guide", "com.example.remote", "Guide", ""), "/remote/Guide", "")
		fallback.ResolveCalls(func(unresolved resolver.UnresolvedReference, parent *reference.Identifier, isSymbolLink bool) (*reference.Resolved, error) {
			if strings.HasSuffix(unresolved.TopicURL, "/Guide") {
				return external, nil
			}
			return nil, errors.New("not here")
		})

		identifier, err := r.Resolve("Guide", nil, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(identifier).To(Equal(external.Identifier))
		Expect(fallback.ResolveCallCount()).To(BeNumerically(">", 0))
	})

	It("caches successful fallback resolutions by URL", func() {
		external := reference.NewResolved("com.example.remote", reference.Intern(reference.Article, "/remote/Cached", "com.example.remote", "Cached", ""), "/remote/Cached", "")
		fallback.ResolveReturnsOnCall(0, external, nil)

		_, err := r.Resolve("Cached", nil, false)
		Expect(err).NotTo(HaveOccurred())
		calls := fallback.ResolveCallCount()

		_, err = r.Resolve("Cached", nil, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(fallback.ResolveCallCount()).To(Equal(calls))
	})

	It("keeps the original error when every candidate fails", func() {
		fallback.ResolveReturns(nil, errors.New("nothing matches"))

		_, err := r.Resolve("/NoSuchKit/Foo", nil, true)
		Expect(err).To(BeAssignableToTypeOf(&resolver.NotFoundError{}))
	})
})

var _ = Describe("External archives", func() {
	It("resolves doc links into a loaded archive", func() {
		remote := buildHierarchy(myKitGraph())
		serialized := remote.Serialize()
		serialized.BundleID = "com.example.remote"

		archive, err := loadArchive(serialized)
		Expect(err).NotTo(HaveOccurred())

		local := resolver.New(buildHierarchy(colorOnlyGraph()))
		local.RegisterExternal("com.example.remote", archive)

		identifier, err := local.Resolve("doc://com.example.remote/MyKit/Color/red", nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(identifier.ID).To(Equal("s:MyKit5ColorO3redyA2CmF"))
	})

	It("reports unknown external bundles as not found", func() {
		local := resolver.New(buildHierarchy(colorOnlyGraph()))
		_, err := local.Resolve("doc://com.example.unknown/MyKit/Color", nil, true)
		Expect(err).To(BeAssignableToTypeOf(&resolver.NotFoundError{}))
	})
})
