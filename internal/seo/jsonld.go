package seo

const schemaContext = "https://schema.org"

// WebSite returns a WebSite schema for the portfolio itself.
func WebSite(name, url, description, lang string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// PostalAddress is the address block of a Person schema.
type PostalAddress struct {
	Locality string
	Region   string
	Country  string
}

// PersonInfo describes the site owner.
type PersonInfo struct {
	Name     string
	JobTitle string
	ImageURL string
	URL      string
	SameAs   []string
	Address  *PostalAddress
}

// Person returns a Person schema.
func Person(p PersonInfo) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Person",
		"name":     p.Name,
	}
	if p.JobTitle != "" {
		m["jobTitle"] = p.JobTitle
	}
	if p.ImageURL != "" {
		m["image"] = p.ImageURL
	}
	if p.URL != "" {
		m["url"] = p.URL
	}
	if len(p.SameAs) > 0 {
		m["sameAs"] = append([]string(nil), p.SameAs...)
	}
	if a := p.Address; a != nil {
		m["address"] = map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": a.Locality,
			"addressRegion":   a.Region,
			"addressCountry":  a.Country,
		}
	}
	return m
}

// CreativeWork is one entry of a CollectionPage.
type CreativeWork struct {
	Name string
	URL  string
}

// CollectionPage returns a CollectionPage schema. Parts are numbered from 1 in order.
func CollectionPage(name, url, description string, parts []CreativeWork) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "CollectionPage",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	if len(parts) > 0 {
		el := make([]map[string]any, 0, len(parts))
		for i, p := range parts {
			el = append(el, map[string]any{
				"@type":    "CreativeWork",
				"position": i + 1,
				"name":     p.Name,
				"url":      p.URL,
			})
		}
		m["hasPart"] = el
	}
	return m
}

// Article returns an Article schema for a case-study page.
func Article(headline, description, url, imageURL, authorName string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": headline,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
		m["mainEntityOfPage"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	return m
}

// BreadcrumbItem is one step of a BreadcrumbList; Item is an absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList numbers items from 1 in order. Items without a name are skipped.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	list := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		list = append(list, map[string]any{
			"@type":    "ListItem",
			"position": len(list) + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": list,
	}
}
