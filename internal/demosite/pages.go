package demosite

// PageDefinition describes one demo page.
type PageDefinition struct {
	Path        string
	Description string
	ContentType string
	HTML        string
}

// GetAllPages returns the demo pages. Each GTM embedding style a scanner
// should recognize appears on at least one page, and the contact pages carry
// extractable emails, phone numbers and contact links.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		{
			Path:        "/",
			Description: "Home page with the standard GTM loader plus noscript fallback",
			HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Acme Widgets</title>
    <script async src="https://www.googletagmanager.com/gtm.js?id=GTM-DEMO01"></script>
</head>
<body>
    <noscript><iframe src="https://www.googletagmanager.com/ns.html?id=GTM-DEMO01"
        height="0" width="0" style="display:none;visibility:hidden"></iframe></noscript>
    <h1>Acme Widgets</h1>
    <p>Questions? Write to sales@acme-widgets.example or call (415) 555-0100.</p>
    <nav>
        <a href="/contact">Contact us</a>
        <a href="/about-us">About the company</a>
        <a href="/plain">Catalog</a>
    </nav>
</body>
</html>`,
		},
		{
			Path:        "/datalayer",
			Description: "Page that only initializes the dataLayer",
			HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Acme Blog</title>
    <script>
        window.dataLayer = [];
        dataLayer.push({'event': 'pageview'});
    </script>
</head>
<body>
    <h1>Blog</h1>
    <p>Editorial inquiries: editor@acme-widgets.example</p>
</body>
</html>`,
		},
		{
			Path:        "/inline-container",
			Description: "Page carrying only a bare container id token",
			HTML: `<!DOCTYPE html>
<html>
<head><title>Landing</title></head>
<body>
    <!-- container GTM-LND777 managed by marketing -->
    <h1>Spring Campaign</h1>
    <a href="/contact">Get in touch</a>
</body>
</html>`,
		},
		{
			Path:        "/plain",
			Description: "Catalog page with contact details but no tag manager",
			HTML: `<!DOCTYPE html>
<html>
<head><title>Catalog</title></head>
<body>
    <h1>Product Catalog</h1>
    <p>Bulk orders: orders@acme-widgets.example, +1 415-555-0123.</p>
</body>
</html>`,
		},
		{
			Path:        "/contact",
			Description: "Contact page with multiple emails and phone formats",
			HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Contact</title>
    <script async src="https://www.googletagmanager.com/gtm.js?id=GTM-DEMO01"></script>
</head>
<body>
    <h1>Contact Acme</h1>
    <ul>
        <li>Sales: sales@acme-widgets.example, (415) 555-0100</li>
        <li>Support: support@acme-widgets.example, 415.555.0199</li>
        <li>International: +44 20 7946 0958 is not listed; use +1 (415) 555-0150</li>
    </ul>
    <a href="/about-us">About us</a>
</body>
</html>`,
		},
		{
			Path:        "/about-us",
			Description: "About page reachable through contact-style links",
			HTML: `<!DOCTYPE html>
<html>
<head>
    <title>About</title>
    <script async src="https://www.googletagmanager.com/gtm.js?id=GTM-DEMO01"></script>
</head>
<body>
    <h1>About Acme Widgets</h1>
    <p>Founded in 2009. Press: press@acme-widgets.example</p>
</body>
</html>`,
		},
	}
}
