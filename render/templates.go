package render

// Template names understood by the default engine. Version-specific
// documents carry a variant suffix.
const (
	TplContainer = "container.xml"
	TplPackageV2 = "content.opf.v2"
	TplPackageV3 = "content.opf.v3"
	TplNCX       = "toc.ncx"
	TplNavV2     = "nav.xhtml.v2"
	TplNavV3     = "nav.xhtml.v3"
	TplInlineToc = "toc.xhtml"
	TplCoverPage = "cover.xhtml"
)

var templateSources = map[string]string{
	TplContainer: `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="{{.PackagePath}}" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`,

	TplPackageV2: `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" unique-identifier="BookId" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
    <dc:title>{{.Title}}</dc:title>
    <dc:identifier id="BookId">{{.Identifier}}</dc:identifier>
    <dc:language>{{.Language}}</dc:language>
    <dc:date>{{.Date}}</dc:date>
{{- range .Authors}}
    <dc:creator opf:role="aut">{{.Name}}</dc:creator>
{{- end}}
{{- range .Descriptions}}
    <dc:description>{{.}}</dc:description>
{{- end}}
{{- range .Subjects}}
    <dc:subject>{{.}}</dc:subject>
{{- end}}
{{- if .License}}
    <dc:rights>{{.License}}</dc:rights>
{{- end}}
    <meta name="generator" content="{{.Generator}}"/>
{{- if .CoverID}}
    <meta name="cover" content="{{.CoverID}}"/>
{{- end}}
  </metadata>
  <manifest>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml"/>
{{- range .Manifest}}
    <item id="{{.ID}}" href="{{.Href}}" media-type="{{.MediaType}}"/>
{{- end}}
  </manifest>
  <spine toc="ncx">
{{- range .Spine}}
    <itemref idref="{{.IDRef}}"{{if not .Linear}} linear="no"{{end}}/>
{{- end}}
  </spine>
{{- if .Guide}}
  <guide>
{{- range .Guide}}
    <reference type="{{.Type}}" title="{{.Title}}" href="{{.Href}}"/>
{{- end}}
  </guide>
{{- end}}
</package>
`,

	TplPackageV3: `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" unique-identifier="BookId" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
    <dc:title>{{.Title}}</dc:title>
    <dc:identifier id="BookId">{{.Identifier}}</dc:identifier>
    <dc:language>{{.Language}}</dc:language>
    <dc:date>{{.Date}}</dc:date>
    <meta property="dcterms:modified">{{.Modified}}</meta>
{{- range .Authors}}
    <dc:creator id="creator{{.ID}}">{{.Name}}</dc:creator>
    <meta refines="#creator{{.ID}}" property="role" scheme="marc:relators">aut</meta>
{{- end}}
{{- range .Descriptions}}
    <dc:description>{{.}}</dc:description>
{{- end}}
{{- range .Subjects}}
    <dc:subject>{{.}}</dc:subject>
{{- end}}
{{- if .License}}
    <dc:rights>{{.License}}</dc:rights>
{{- end}}
    <meta name="generator" content="{{.Generator}}"/>
{{- if .CoverID}}
    <meta name="cover" content="{{.CoverID}}"/>
{{- end}}
  </metadata>
  <manifest>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
{{- range .Manifest}}
    <item id="{{.ID}}" href="{{.Href}}" media-type="{{.MediaType}}"{{if .Properties}} properties="{{.Properties}}"{{end}}/>
{{- end}}
  </manifest>
  <spine toc="ncx">
{{- range .Spine}}
    <itemref idref="{{.IDRef}}"{{if not .Linear}} linear="no"{{end}}/>
{{- end}}
  </spine>
</package>
`,

	TplNCX: `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <head>
    <meta name="dtb:uid" content="{{.Identifier}}"/>
    <meta name="dtb:depth" content="{{.Depth}}"/>
    <meta name="dtb:totalPageCount" content="0"/>
    <meta name="dtb:maxPageNumber" content="0"/>
  </head>
  <docTitle>
    <text>{{.Title}}</text>
  </docTitle>
  <navMap>
{{.NavPoints}}  </navMap>
</ncx>
`,

	TplNavV2: `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>
  <title>{{.TocTitle}}</title>
  <link rel="stylesheet" type="text/css" href="stylesheet.css"/>
</head>
<body>
  <div class="toc" id="toc">
    <h1 class="toc-title">{{.TocTitle}}</h1>
{{.Entries}}  </div>
</body>
</html>
`,

	TplNavV3: `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <meta charset="utf-8"/>
  <title>{{.TocTitle}}</title>
  <link rel="stylesheet" type="text/css" href="stylesheet.css"/>
</head>
<body>
  <nav epub:type="toc" id="toc" role="doc-toc">
    <h1 class="toc-title">{{.TocTitle}}</h1>
{{.Entries}}  </nav>
{{- if .Landmarks}}
  <nav epub:type="landmarks" id="landmarks" hidden="">
    <h2>Landmarks</h2>
    <ol>
{{- range .Landmarks}}
      <li><a epub:type="{{.Type}}" href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
    </ol>
  </nav>
{{- end}}
</body>
</html>
`,

	TplInlineToc: `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>
  <title>{{.TocTitle}}</title>
  <link rel="stylesheet" type="text/css" href="stylesheet.css"/>
</head>
<body>
  <div class="toc-page">
    <h1 class="toc-title">{{.TocTitle}}</h1>
{{.Entries}}  </div>
</body>
</html>
`,

	TplCoverPage: `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>
  <style type="text/css">html, body { margin: 0; padding: 0; width: 100%; height: 100%; } svg { display: block; width: auto; height: 100%; margin: 0 auto; }</style>
  <title>{{.Title}}</title>
</head>
<body>
  <svg version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 {{.Width}} {{.Height}}" preserveAspectRatio="xMidYMid meet">
    <image x="0" y="0" width="{{.Width}}" height="{{.Height}}" xlink:href="{{.Href}}"/>
  </svg>
</body>
</html>
`,
}
