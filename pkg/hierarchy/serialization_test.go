// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy_test

import (
	"encoding/json"

	"github.com/gardener/doclink/pkg/hierarchy"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Serialization", func() {
	It("round-trips a hierarchy through its archive shape", func() {
		original := build(twoFooGraph(), protocolGraph())
		encoded, err := json.Marshal(original)
		Expect(err).NotTo(HaveOccurred())

		var serialized hierarchy.SerializedHierarchy
		Expect(json.Unmarshal(encoded, &serialized)).To(Succeed())
		restored, err := hierarchy.FromSerialized(&serialized)
		Expect(err).NotTo(HaveOccurred())

		Expect(restored.BundleID()).To(Equal(original.BundleID()))
		Expect(restored.Dump()).To(Equal(original.Dump()))
	})

	It("preserves sparse placeholders", func() {
		original := build(sparseGraph())
		serialized := original.Serialize()
		restored, err := hierarchy.FromSerialized(serialized)
		Expect(err).NotTo(HaveOccurred())

		module, found := restored.ModuleNode("MyKit")
		Expect(found).To(BeTrue())
		aTree, found := module.ChildTree("A")
		Expect(found).To(BeTrue())
		a, err := aTree.Find("", "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(a.IsSparse()).To(BeTrue())
		Expect(a.Identifier()).To(BeNil())
	})
})
