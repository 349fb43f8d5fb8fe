// Package sources implements candidate discovery providers and transcript
// extraction strategies, split by responsibility:
//
//	feed.go       YouTube Atom search/playlist feed sources
//	bing.go       Bing RSS secondary search, used when the feed query fails
//	urls.go       video/playlist ID parsing and the direct-URL source
//	enrich.go     watch-page metadata enrichment for direct URLs
//	ytdlp.go      yt-dlp subprocess strategy and json3 payload decoding
//	watchpage.go  caption-track scrape strategy and timedtext decoding
//	transcript.go ordered strategy coordinator with caching
package sources
