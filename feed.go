package main

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Author      string  `xml:"author,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

func buildFeed(link string, blogs []BlogEntry) rssFeed {
	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "blogs",
			Link:        link,
			Description: "Blogs ordered by likes",
		},
	}
	for _, b := range blogs {
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       b.Title,
			Link:        b.URL,
			Description: fmt.Sprintf("%s by %s, %d likes", b.Title, b.Author, b.Likes),
			Author:      b.Author,
			GUID:        rssGUID{Value: b.ID},
		})
	}
	return feed
}

// Feed serves the blog list, most liked first, as RSS 2.0.
func (a *App) Feed(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	feed := buildFeed(scheme+"://"+r.Host+"/", a.blogs.Sorted())

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		log.Printf("encoding feed: %v", err)
	}
}
