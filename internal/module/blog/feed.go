package blog

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// FeedConfig describes the site the RSS channel belongs to.
type FeedConfig struct {
	Title       string
	Description string
	BaseURL     string
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// renderFeed encodes posts as an RSS 2.0 document.
func renderFeed(cfg FeedConfig, posts []domain.BlogPost) ([]byte, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	ch := rssChannel{
		Title:       cfg.Title,
		Link:        base + "/blog",
		Description: cfg.Description,
		Items:       make([]rssItem, 0, len(posts)),
	}

	for i, p := range posts {
		link := base + "/blog/" + p.Slug
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			Author:      p.Author,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
		}
		if p.Category != "" {
			item.Categories = append(item.Categories, p.Category)
		}
		item.Categories = append(item.Categories, p.Tags...)
		if p.PublishedAt != nil {
			item.PubDate = p.PublishedAt.UTC().Format(time.RFC1123Z)
			if i == 0 {
				ch.LastBuildDate = item.PubDate
			}
		}
		ch.Items = append(ch.Items, item)
	}

	out, err := xml.MarshalIndent(rssDocument{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
