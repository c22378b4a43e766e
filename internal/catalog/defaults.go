package catalog

// defaultCatalogYAML mirrors the production offering. Prices are authored
// per currency; the XAF column is not a conversion of the EUR column.
const defaultCatalogYAML = `
project_types:
  - id: vitrine
    label: Site Vitrine
    description: Presentation site for a business or personal brand
    price:
      eur: 250
      xaf: 150000
  - id: ecommerce
    label: E-commerce
    description: Online store with catalog, cart and checkout
    price:
      eur: 600
      xaf: 390000
  - id: webapp
    label: App Web / SaaS
    description: Custom web application or SaaS product
    price:
      eur: 900
      xaf: 590000
  - id: wordpress
    label: WordPress
    description: WordPress site with custom theme
    price:
      eur: 200
      xaf: 120000

features:
  - id: seo
    label: Optimisation SEO
    description: On-page SEO, sitemap and metadata
    price:
      eur: 50
      xaf: 30000
  - id: multilingual
    label: Multilingue
    description: Second language for all pages
    price:
      eur: 80
      xaf: 50000
  - id: cms
    label: Admin / CMS
    description: Content administration panel
    price:
      eur: 120
      xaf: 75000
  - id: booking
    label: Reservation en ligne
    description: Booking calendar with email reminders
    price:
      eur: 100
      xaf: 65000
  - id: maintenance
    label: Maintenance 6 mois
    description: Updates and fixes for six months
    price:
      eur: 90
      xaf: 55000
`
