package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/europlast/storefront/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// money formats at the render boundary only; stored rates stay raw.
func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func renderCart(lines []models.CartLine, total float64) string {
	if len(lines) == 0 {
		return mutedStyle.Render("Your cart is empty.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("Cart (%d items)", len(lines))))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tNAME\tRATE\tQTY\tAMOUNT")
	for _, line := range lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			line.ItemCode, line.ItemName, money(line.Rate), line.Qty, money(line.Amount()))
	}
	w.Flush()

	fmt.Fprintf(&b, "\n%s %s", headerStyle.Render("Total:"), totalStyle.Render(money(total)))
	return b.String()
}

func renderWishlist(entries []models.WishlistEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("Your wishlist is empty.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("Wishlist (%d items)", len(entries))))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tNAME\tROUTE")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.ItemCode, entry.ItemName, entry.Route)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func renderAddresses(addresses []models.Address) string {
	if len(addresses) == 0 {
		return mutedStyle.Render("No saved addresses.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render("Addresses"))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tADDRESS\tCITY\tCOUNTRY\tPHONE")
	for _, addr := range addresses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			addr.Name, addr.AddressLine1, addr.City, addr.Country, addr.Phone)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func renderHistory(entries []models.AddressHistoryEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render("Recent addresses:"))
	for i, entry := range entries {
		fmt.Fprintf(&b, "  %d. %s, %s, %s\n", i+1, entry.AddressLine1, entry.City, entry.Country)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderProfile(p models.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render("Profile"))

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name\t%s\n", p.FullName)
	fmt.Fprintf(w, "Email\t%s\n", p.Email)
	fmt.Fprintf(w, "Phone\t%s\n", p.Phone)
	fmt.Fprintf(w, "Address\t%s\n", p.AddressLine1)
	fmt.Fprintf(w, "City\t%s\n", p.City)
	fmt.Fprintf(w, "Country\t%s\n", p.Country)
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
