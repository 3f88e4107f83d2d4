package mcpserver

// ContentFormatContract describes the YAML content file format that LLM
// consumers should follow when adding projects or certificates.
const ContentFormatContract = `# Folio Content Format Contract

Portfolio records live as YAML files in the content directory:

- ` + "`" + `projects/<slug>.yaml` + "`" + ` for projects
- ` + "`" + `certificates/<slug>.yaml` + "`" + ` for certificates and education

A file holds either one record (a mapping) or a list of records. Files are
synced into the store on startup and on change; a record is keyed by its
` + "`" + `link` + "`" + `, so writing the same link again updates it.

## Project

` + "```" + `yaml
title: Realtime Dashboard              # REQUIRED
link: https://dashboard.example.com    # REQUIRED, unique key
image: https://img.example.com/d.png   # OPTIONAL, preview image URL
description: Live metrics for a fleet  # OPTIONAL
tags: [Go, SQLite, SSE]                # OPTIONAL
featured: true                         # OPTIONAL
` + "```" + `

## Certificate

` + "```" + `yaml
title: Cloud Practitioner              # REQUIRED
issuer: Example Academy                # REQUIRED
link: https://verify.example.com/123   # REQUIRED, unique key
date: 2024-05-01                       # OPTIONAL, YYYY-MM-DD or RFC 3339
type: certification                    # OPTIONAL, education | certification
description: Foundations of the cloud  # OPTIONAL
` + "```" + `

## Rules

1. Keys are lower-case English field names as shown above.
2. Blank values are ignored: the site keeps its curated value for that field.
3. A record whose link or title matches a curated entry overrides that entry
   field by field. The curated image is kept unless the site is configured to
   prefer stored images.
4. Other projects appear only when they carry title, image and link.
   Other certificates appear only with a title and an issuer.
5. File names use lower-case kebab-case and end with ` + "`" + `.yaml` + "`" + `.
`
