// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

// Grafting of non-symbol pages. All of these may be called after Build, but
// before the final Freeze that precedes resolution.

// AddArticle grafts an article page under the articles container.
func (h *Hierarchy) AddArticle(bundleID, name string) *Node {
	return h.graft(h.articles, bundleID, name, KindArticle)
}

// AddTutorial grafts a tutorial page under the tutorial container.
func (h *Hierarchy) AddTutorial(bundleID, name string) *Node {
	return h.graft(h.tutorials, bundleID, name, KindTutorial)
}

// AddTutorialOverview grafts a tutorial overview page under the overview
// container.
func (h *Hierarchy) AddTutorialOverview(bundleID, name string) *Node {
	return h.graft(h.tutorialOverviews, bundleID, name, KindTutorialOverview)
}

// AddTechnology injects a technology root beside the module roots.
func (h *Hierarchy) AddTechnology(bundleID, name string) *Node {
	if existing, found := h.modules[name]; found {
		return existing
	}
	node := newNonSymbolNode(name, KindTechnology, bundleID)
	h.registerModule(name, node)
	return node
}

// AddVolume nests a volume under a technology root.
func (h *Hierarchy) AddVolume(technology *Node, name string) *Node {
	return h.graft(technology, technology.BundleID(), name, KindVolume)
}

// AddChapter nests a chapter under a volume.
func (h *Hierarchy) AddChapter(volume *Node, name string) *Node {
	return h.graft(volume, volume.BundleID(), name, KindChapter)
}

// AddAnchor grafts an on-page anchor under its owning page.
func (h *Hierarchy) AddAnchor(owner *Node, name string) *Node {
	return h.graft(owner, owner.BundleID(), name, KindAnchor)
}

// AddTaskGroup grafts a task group under its containing page.
func (h *Hierarchy) AddTaskGroup(owner *Node, name string) *Node {
	return h.graft(owner, owner.BundleID(), name, KindTaskGroup)
}

// AddLandmark grafts a tutorial landmark under its tutorial.
func (h *Hierarchy) AddLandmark(tutorial *Node, name string) *Node {
	return h.graft(tutorial, tutorial.BundleID(), name, KindLandmark)
}

func (h *Hierarchy) graft(parent *Node, bundleID, name, kind string) *Node {
	if tree, found := parent.ChildTree(name); found {
		for _, existing := range tree.All() {
			if existing.NonSymbolKind() == kind && existing.BundleID() == bundleID {
				return existing
			}
		}
	}
	node := newNonSymbolNode(name, kind, bundleID)
	parent.addChild(name, anyValue, anyValue, node)
	return node
}
