package domain

// Event is a state transition applied to an Engine.
type Event interface {
	isEvent()
}

type ArticlesLoaded struct{ Articles []Article }
type TagsLoaded struct{ Tags []Tag }
type SourcesLoaded struct{ Sources []Source }
type TagToggled struct{ TagID int64 }
type SourceToggled struct{ SourceID int64 }
type TagsCleared struct{}
type SourcesCleared struct{}
type SortSet struct{ Sort SortCriterion }

// SelectionReplaced swaps the entire selection, as received from a client.
type SelectionReplaced struct{ Selection SelectionState }

func (ArticlesLoaded) isEvent()    {}
func (TagsLoaded) isEvent()        {}
func (SourcesLoaded) isEvent()     {}
func (TagToggled) isEvent()        {}
func (SourceToggled) isEvent()     {}
func (TagsCleared) isEvent()       {}
func (SourcesCleared) isEvent()    {}
func (SortSet) isEvent()           {}
func (SelectionReplaced) isEvent() {}

// Engine holds the loaded article collection together with the current selection
// and keeps the filtered view in sync with both.
//
// Engine is not safe for concurrent use; callers feed it from a single goroutine.
type Engine struct {
	articles  []Article
	tags      []Tag
	sources   []Source
	selection SelectionState
	view      []Article
}

func NewEngine() *Engine {
	return &Engine{
		selection: SelectionState{Tags: IDSet{}, Sources: IDSet{}},
		view:      []Article{},
	}
}

// Apply folds a single event into the engine state and recomputes the view.
// Events carrying an unknown sort criterion leave the active sort unchanged.
func (e *Engine) Apply(ev Event) {
	switch ev := ev.(type) {
	case ArticlesLoaded:
		e.articles = ev.Articles
	case TagsLoaded:
		e.tags = ev.Tags
	case SourcesLoaded:
		e.sources = ev.Sources
	case TagToggled:
		e.selection.Tags = e.selection.Tags.Toggled(ev.TagID)
	case SourceToggled:
		e.selection.Sources = e.selection.Sources.Toggled(ev.SourceID)
	case TagsCleared:
		e.selection.Tags = IDSet{}
	case SourcesCleared:
		e.selection.Sources = IDSet{}
	case SortSet:
		// Re-derived from the collection rather than the previous view so that
		// ties fall back to collection order, not to the previous sort.
		if ev.Sort.Valid() {
			e.selection.Sort = ev.Sort
		}
	case SelectionReplaced:
		sort := e.selection.Sort
		e.selection = ev.Selection.Clone()
		if !e.selection.Sort.Valid() {
			e.selection.Sort = sort
		}
	}

	e.view = Select(e.articles, e.selection)
}

// Load replaces all three collections and resets the selection.
func (e *Engine) Load(articles []Article, tags []Tag, sources []Source) {
	e.selection = SelectionState{Tags: IDSet{}, Sources: IDSet{}}
	e.Apply(ArticlesLoaded{Articles: articles})
	e.Apply(TagsLoaded{Tags: tags})
	e.Apply(SourcesLoaded{Sources: sources})
}

func (e *Engine) LoadArticles(articles []Article) { e.Apply(ArticlesLoaded{Articles: articles}) }
func (e *Engine) LoadTags(tags []Tag)             { e.Apply(TagsLoaded{Tags: tags}) }
func (e *Engine) LoadSources(sources []Source)    { e.Apply(SourcesLoaded{Sources: sources}) }

func (e *Engine) ToggleTag(id int64)    { e.Apply(TagToggled{TagID: id}) }
func (e *Engine) ToggleSource(id int64) { e.Apply(SourceToggled{SourceID: id}) }
func (e *Engine) ClearTags()            { e.Apply(TagsCleared{}) }
func (e *Engine) ClearSources()         { e.Apply(SourcesCleared{}) }

func (e *Engine) SetSort(criterion SortCriterion) { e.Apply(SortSet{Sort: criterion}) }

func (e *Engine) SetSelection(state SelectionState) { e.Apply(SelectionReplaced{Selection: state}) }

// View returns a copy of the current filtered view.
func (e *Engine) View() []Article {
	return append(make([]Article, 0, len(e.view)), e.view...)
}

// Articles returns the loaded collection. Missing slices read as empty.
func (e *Engine) Articles() []Article {
	return append(make([]Article, 0, len(e.articles)), e.articles...)
}

func (e *Engine) Tags() []Tag {
	return append(make([]Tag, 0, len(e.tags)), e.tags...)
}

func (e *Engine) Sources() []Source {
	return append(make([]Source, 0, len(e.sources)), e.sources...)
}

func (e *Engine) Selection() SelectionState {
	return e.selection.Clone()
}
