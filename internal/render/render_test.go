package render

import (
	"strings"
	"testing"

	"github.com/nfu-tools/nfu-announcements/internal/announcement"
)

func TestItem(t *testing.T) {
	item := announcement.Item{
		Title:  "114學年度 獎學金申請",
		Link:   "https://nfuosa.nfu.edu.tw/news/1",
		Date:   "2025-03-01",
		Source: "NFU_OSA",
	}

	want := "\n" +
		`        <div class="scraped-post-item" style="border-buttom: 2px solid black; padding: 6px; margin-bottom: 5px; font-family: 'DFKai-sb','Times New Roman';">` + "\n" +
		`          <div class="scraped-header">` + "\n" +
		`            <span class="scraped-source">🏫 NFU_OSA</span>` + "\n" +
		`            <span class="scraped-date">📅 2025-03-01</span>` + "\n" +
		`          </div>` + "\n" +
		`          <div class="scraped-title">` + "\n" +
		`            <a href="https://nfuosa.nfu.edu.tw/news/1" target="_blank">114學年度 獎學金申請</a>` + "\n" +
		`          </div>` + "\n" +
		`        </div>` + "\n" +
		`        <hr class="announcement-separator">` + "\n" +
		`        `

	if got := Item(item); got != want {
		t.Errorf("Item() =\n%q\nwant\n%q", got, want)
	}
}

func TestItem_Escapes(t *testing.T) {
	got := Item(announcement.Item{
		Title:  `R&D <b>day</b>`,
		Link:   `/x?a=1&b="2"`,
		Date:   announcement.NoDate,
		Source: "NFU_GAW",
	})

	if !strings.Contains(got, `>R&amp;D &lt;b&gt;day&lt;/b&gt;</a>`) {
		t.Errorf("title not escaped: %s", got)
	}
	if !strings.Contains(got, `href="/x?a=1&amp;b=&#34;2&#34;"`) {
		t.Errorf("href not escaped: %s", got)
	}
	if !strings.Contains(got, "📅 "+announcement.NoDate) {
		t.Errorf("placeholder date missing: %s", got)
	}
}

func TestDocument(t *testing.T) {
	items := []announcement.Item{
		{Title: "A", Link: "/a", Date: "1", Source: "S"},
		{Title: "B", Link: "/b", Date: "2", Source: "S"},
	}
	doc := Document(Items(items))

	if !strings.HasPrefix(doc, ContainerOpen) {
		t.Errorf("Document() missing container open")
	}
	if !strings.HasSuffix(doc, ContainerClose) {
		t.Errorf("Document() missing container close")
	}
	if n := strings.Count(doc, `class="scraped-post-item"`); n != 2 {
		t.Errorf("Document() has %d items, want 2", n)
	}
	if n := strings.Count(doc, `<hr class="announcement-separator">`); n != 2 {
		t.Errorf("Document() has %d separators, want 2", n)
	}
	if strings.Index(doc, `>A</a>`) > strings.Index(doc, `>B</a>`) {
		t.Error("Document() did not keep item order")
	}
}

func TestDocument_Empty(t *testing.T) {
	if got := Document(nil); got != ContainerOpen+ContainerClose {
		t.Errorf("Document(nil) = %q", got)
	}
}
